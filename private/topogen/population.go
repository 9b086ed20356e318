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
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// PopulationBuilder creates the ASes of a topology. Identifiers are handed out
// Tier1 first, then transit, then stub ASes, so AS1 is a Tier1 AS whenever
// one exists.
type PopulationBuilder struct {
	Rand    *rand.Rand
	Degrees DegreeRanges

	ids astopo.Sequence[astopo.ASID]
}

// Build adds pop.Total() ASes to topo. Every AS samples its targets from the
// range of its tier. Tier1 ASes get a peering target of 0; the peer connector
// sets it once the Tier1 mesh is built.
func (b *PopulationBuilder) Build(topo *astopo.Topology, pop Population) error {
	tiers := []struct {
		tier  astopo.Tier
		count int
	}{
		{astopo.Tier1, pop.Tier1},
		{astopo.Transit, pop.Transit},
		{astopo.Stub, pop.Stub},
	}
	for _, t := range tiers {
		for range t.count {
			if _, err := topo.AddAS(b.ids.Next(), t.tier, 0, 0); err != nil {
				return serrors.Wrap("adding AS", err, "tier", t.tier)
			}
		}
	}
	for _, a := range topo.ASes() {
		switch a.Tier {
		case astopo.Tier1:
			a.P2PTarget = 0
			a.P2CTarget = b.Degrees.Tier1.P2C.Sample(b.Rand)
		case astopo.Transit:
			a.P2PTarget = b.Degrees.Transit.P2P.Sample(b.Rand)
			a.P2CTarget = b.Degrees.Transit.P2C.Sample(b.Rand)
		case astopo.Stub:
			a.P2PTarget = b.Degrees.Stub.P2P.Sample(b.Rand)
			a.P2CTarget = b.Degrees.Stub.P2C.Sample(b.Rand)
		}
	}
	return nil
}
