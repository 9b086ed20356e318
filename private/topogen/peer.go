// Copyright 2026 The mini-internet-simulation Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topogen

import (
	"math/rand"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/metrics"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// PeerConnector builds the peering graph.
//
// Tier1 ASes are peered in a full mesh. Stubs peer with other stubs with
// spare capacity and, with probability StubToTransit per pick, with transit
// ASes that are not already their providers. Transit ASes peer among
// themselves.
type PeerConnector struct {
	Rand          *rand.Rand
	StubToTransit float64
	Logger        log.Logger
	Metrics       *Metrics
}

// Connect runs all three phases on topo. Running it again on a topology it
// already connected adds no edges.
func (c *PeerConnector) Connect(topo *astopo.Topology) ([]Shortfall, error) {
	stubs := topo.ByTier(astopo.Stub)
	transits := topo.ByTier(astopo.Transit)
	tier1s := topo.ByTier(astopo.Tier1)

	for i, a := range tier1s {
		for _, b := range tier1s[i+1:] {
			if a.HasPeer(b) {
				continue
			}
			if err := c.connect(a, b); err != nil {
				return nil, err
			}
		}
	}
	for _, a := range tier1s {
		a.P2PTarget = a.PeerDegree()
	}

	var shortfalls []Shortfall
	for _, stub := range stubs {
		for stub.SpareP2P() {
			candidate := func(p *astopo.AS) bool {
				return p != stub && p.SpareP2P() && !stub.HasPeer(p) && !stub.HasProvider(p)
			}
			pool := filter(stubs, candidate)
			if c.Rand.Float64() < c.StubToTransit {
				pool = append(pool, filter(transits, candidate)...)
			}
			if len(pool) == 0 {
				shortfalls = append(shortfalls, clampP2P(stub, c.Logger, c.Metrics))
				break
			}
			if err := c.connect(stub, pool[c.Rand.Intn(len(pool))]); err != nil {
				return shortfalls, err
			}
		}
	}

	for _, transit := range transits {
		for transit.SpareP2P() {
			pool := filter(transits, func(p *astopo.AS) bool {
				return p != transit && p.SpareP2P() && !transit.HasPeer(p)
			})
			if len(pool) == 0 {
				shortfalls = append(shortfalls, clampP2P(transit, c.Logger, c.Metrics))
				break
			}
			if err := c.connect(transit, pool[c.Rand.Intn(len(pool))]); err != nil {
				return shortfalls, err
			}
		}
	}
	return shortfalls, nil
}

func (c *PeerConnector) connect(a, b *astopo.AS) error {
	if err := astopo.ConnectP2P(a, b); err != nil {
		return serrors.Wrap("connecting peer", err)
	}
	metrics.CounterInc(c.Metrics.edge(P2P))
	return nil
}
