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

package topogen_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/private/topogen"
)

func TestPopulationBuilder(t *testing.T) {
	degrees := topogen.DegreeRanges{
		Tier1: topogen.Degrees{
			P2P: topogen.Range{Min: 50, Max: 60},
			P2C: topogen.Range{Min: 20, Max: 22},
		},
		Transit: topogen.Degrees{
			P2P: topogen.Range{Min: 3, Max: 4},
			P2C: topogen.Range{Min: 7, Max: 9},
		},
		Stub: topogen.Degrees{
			P2P: topogen.Range{Min: 0, Max: 1},
			P2C: topogen.Range{Min: 1, Max: 2},
		},
	}
	b := topogen.PopulationBuilder{Rand: rand.New(rand.NewSource(3)), Degrees: degrees}
	topo := astopo.New()
	require.NoError(t, b.Build(topo, topogen.Population{Tier1: 2, Transit: 3, Stub: 4}))

	expected := []astopo.Tier{
		astopo.Tier1, astopo.Tier1,
		astopo.Transit, astopo.Transit, astopo.Transit,
		astopo.Stub, astopo.Stub, astopo.Stub, astopo.Stub,
	}
	ases := topo.ASes()
	require.Len(t, ases, len(expected))
	inRange := func(r topogen.Range, v int) bool { return v >= r.Min && v <= r.Max }
	for i, a := range ases {
		assert.Equal(t, astopo.ASID(i+1), a.ID)
		assert.Equal(t, expected[i], a.Tier, "%s", a)
		switch a.Tier {
		case astopo.Tier1:
			assert.Zero(t, a.P2PTarget, "%s", a)
			assert.True(t, inRange(degrees.Tier1.P2C, a.P2CTarget), "%s", a)
		case astopo.Transit:
			assert.True(t, inRange(degrees.Transit.P2P, a.P2PTarget), "%s", a)
			assert.True(t, inRange(degrees.Transit.P2C, a.P2CTarget), "%s", a)
		case astopo.Stub:
			assert.True(t, inRange(degrees.Stub.P2P, a.P2PTarget), "%s", a)
			assert.True(t, inRange(degrees.Stub.P2C, a.P2CTarget), "%s", a)
		}
		assert.Empty(t, a.Peers())
		assert.Empty(t, a.Providers())
	}
}

func TestPopulationBuilderEmptyTiers(t *testing.T) {
	testCases := map[string]struct {
		pop      topogen.Population
		expected []astopo.Tier
	}{
		"stubs only": {
			pop:      topogen.Population{Stub: 2},
			expected: []astopo.Tier{astopo.Stub, astopo.Stub},
		},
		"no transit": {
			pop:      topogen.Population{Tier1: 1, Stub: 1},
			expected: []astopo.Tier{astopo.Tier1, astopo.Stub},
		},
		"empty": {},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			b := topogen.PopulationBuilder{
				Rand:    rand.New(rand.NewSource(1)),
				Degrees: topogen.DefaultParams().Degrees,
			}
			topo := astopo.New()
			require.NoError(t, b.Build(topo, tc.pop))
			var tiers []astopo.Tier
			for i, a := range topo.ASes() {
				assert.Equal(t, astopo.ASID(i+1), a.ID)
				tiers = append(tiers, a.Tier)
			}
			assert.Equal(t, tc.expected, tiers)
		})
	}
}
