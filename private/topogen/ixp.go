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
	"slices"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/metrics"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// IXPResult summarizes the exchange point phase.
type IXPResult struct {
	Kept      int
	Discarded int
}

// IXPConnector creates the exchange points of a topology.
//
// Every candidate exchange point consumes an identifier from IDs. A candidate
// with no member besides its anchor AS is discarded and its identifier is
// never reused, so the identifiers of the kept exchange points may have gaps.
type IXPConnector struct {
	Rand *rand.Rand
	// Same is the probability that an anchor AS gets an optional exchange
	// point.
	Same float64
	// Cross is the probability that a candidate joins an optional exchange
	// point.
	Cross   float64
	Logger  log.Logger
	Metrics *Metrics
	IDs     *astopo.Sequence[astopo.IXPID]
}

// Connect creates the exchange points in three phases, anchored at Tier1,
// transit and stub ASes respectively.
func (c *IXPConnector) Connect(topo *astopo.Topology) (IXPResult, error) {
	if c.IDs == nil {
		c.IDs = &astopo.Sequence[astopo.IXPID]{}
	}
	stubs := topo.ByTier(astopo.Stub)
	transits := topo.ByTier(astopo.Transit)
	tier1s := topo.ByTier(astopo.Tier1)

	var res IXPResult
	create := func(kind string, members []*astopo.AS) error {
		id := c.IDs.Next()
		if len(members) < 2 {
			res.Discarded++
			metrics.CounterInc(c.Metrics.ixp(false))
			log.SafeDebug(c.Logger, "Exchange point discarded", "ixp", id, "kind", kind)
			return nil
		}
		if _, err := topo.AddIXP(id, members...); err != nil {
			return serrors.Wrap("adding exchange point", err, "kind", kind)
		}
		res.Kept++
		metrics.CounterInc(c.Metrics.ixp(true))
		metrics.CounterAdd(c.Metrics.edge(IXP), float64(len(members)))
		return nil
	}

	if len(tier1s) > 0 {
		if err := create("tier1", tier1s); err != nil {
			return res, err
		}
		candidates := slices.Concat(transits, stubs)
		for _, t1 := range tier1s {
			if err := create("tier1-customers", anchored(t1, t1.Customers())); err != nil {
				return res, err
			}
			if c.Rand.Float64() < c.Same {
				if err := create("tier1-random", c.sampled(t1, candidates)); err != nil {
					return res, err
				}
			}
		}
	}

	for _, transit := range transits {
		if err := create("transit-customers", anchored(transit, transit.Customers())); err != nil {
			return res, err
		}
		if c.Rand.Float64() < c.Same {
			others := filter(transits, func(o *astopo.AS) bool { return o != transit })
			if err := create("transit", append(others, transit)); err != nil {
				return res, err
			}
			if err := create("transit-stubs", c.sampled(transit, stubs)); err != nil {
				return res, err
			}
		}
	}

	for _, stub := range stubs {
		if c.Rand.Float64() < c.Same {
			if err := create("stubs", c.sampled(stub, stubs)); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

// anchored returns the anchor followed by the members.
func anchored(anchor *astopo.AS, members []*astopo.AS) []*astopo.AS {
	return append([]*astopo.AS{anchor}, members...)
}

// sampled selects every candidate other than the anchor with probability
// Cross and appends the anchor. Only the anchor is returned if no candidate
// was selected.
func (c *IXPConnector) sampled(anchor *astopo.AS, candidates []*astopo.AS) []*astopo.AS {
	var members []*astopo.AS
	for _, a := range candidates {
		if a == anchor {
			continue
		}
		if c.Rand.Float64() < c.Cross {
			members = append(members, a)
		}
	}
	return append(members, anchor)
}
