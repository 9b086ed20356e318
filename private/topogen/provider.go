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

// ProviderConnector builds the provider/customer hierarchy.
//
// Stubs buy transit from transit ASes with spare capacity and, with
// probability StubToTier1 per pick, also from Tier1 ASes. Every transit AS then
// gets a Tier1 provider and further Tier1 providers until its target is met.
// Tier1 ASes never get providers.
type ProviderConnector struct {
	Rand        *rand.Rand
	StubToTier1 float64
	Logger      log.Logger
	Metrics     *Metrics
}

// Connect runs all three phases on topo. Running it again on a topology it
// already connected adds no edges.
func (c *ProviderConnector) Connect(topo *astopo.Topology) ([]Shortfall, error) {
	stubs := topo.ByTier(astopo.Stub)
	transits := topo.ByTier(astopo.Transit)
	tier1s := topo.ByTier(astopo.Tier1)

	var shortfalls []Shortfall
	for _, stub := range stubs {
		for stub.SpareP2C() {
			candidate := func(p *astopo.AS) bool {
				return p.SpareP2C() && !stub.HasProvider(p)
			}
			pool := filter(transits, candidate)
			if c.Rand.Float64() < c.StubToTier1 {
				pool = append(pool, filter(tier1s, candidate)...)
			}
			if len(pool) == 0 {
				shortfalls = append(shortfalls, clampP2C(stub, c.Logger, c.Metrics))
				break
			}
			if err := c.connect(pool[c.Rand.Intn(len(pool))], stub); err != nil {
				return shortfalls, err
			}
		}
	}

	for _, transit := range transits {
		if !transit.HasTier1Provider() {
			pool := filter(tier1s, func(p *astopo.AS) bool { return !transit.HasProvider(p) })
			if len(pool) == 0 {
				log.SafeDebug(c.Logger, "No Tier1 provider available", "as", transit.ID)
			} else if err := c.connect(pool[c.Rand.Intn(len(pool))], transit); err != nil {
				return shortfalls, err
			}
		}
		for transit.SpareP2C() {
			pool := filter(tier1s, func(p *astopo.AS) bool {
				return p.SpareP2C() && !transit.HasProvider(p)
			})
			if len(pool) == 0 {
				shortfalls = append(shortfalls, clampP2C(transit, c.Logger, c.Metrics))
				break
			}
			if err := c.connect(pool[c.Rand.Intn(len(pool))], transit); err != nil {
				return shortfalls, err
			}
		}
		// The mandatory Tier1 provider ignores the target.
		c.raiseP2C(transit)
	}

	// Mandatory transit links can exceed the target of a Tier1 AS.
	for _, tier1 := range tier1s {
		if tier1.SpareP2C() {
			shortfalls = append(shortfalls, clampP2C(tier1, c.Logger, c.Metrics))
		} else {
			c.raiseP2C(tier1)
		}
	}
	return shortfalls, nil
}

// raiseP2C sets the P2C target of a to its achieved degree if the degree is
// above the target.
func (c *ProviderConnector) raiseP2C(a *astopo.AS) {
	if d := a.P2CDegree(); d > a.P2CTarget {
		log.SafeDebug(c.Logger, "Degree target raised", "kind", P2C, "as", a.ID,
			"tier", a.Tier, "target", a.P2CTarget, "achieved", d)
		a.P2CTarget = d
	}
}

func (c *ProviderConnector) connect(provider, customer *astopo.AS) error {
	if err := astopo.ConnectP2C(provider, customer); err != nil {
		return serrors.Wrap("connecting provider", err)
	}
	metrics.CounterInc(c.Metrics.edge(P2C))
	return nil
}
