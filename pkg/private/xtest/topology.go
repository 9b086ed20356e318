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

package xtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
)

// SmallTopology builds a five AS topology with every relation kind:
//
//	AS1, AS2   TIER1, peering, both members of IXP1
//	AS3        TRANSIT, customer of AS1 and AS2
//	AS4, AS5   STUB, peering, customers of AS3, AS5 also of AS1
//	IXP3       members AS5, AS4, AS3 (IXP2 was discarded)
//
// Relations are created out of identifier order.
func SmallTopology(t testing.TB) *astopo.Topology {
	t.Helper()

	topo := astopo.New()
	add := func(id astopo.ASID, tier astopo.Tier, p2p, p2c int) *astopo.AS {
		a, err := topo.AddAS(id, tier, p2p, p2c)
		require.NoError(t, err)
		return a
	}
	as1 := add(1, astopo.Tier1, 1, 2)
	as2 := add(2, astopo.Tier1, 1, 1)
	as3 := add(3, astopo.Transit, 0, 4)
	as4 := add(4, astopo.Stub, 1, 1)
	as5 := add(5, astopo.Stub, 1, 2)

	require.NoError(t, astopo.ConnectP2P(as2, as1))
	require.NoError(t, astopo.ConnectP2C(as1, as5))
	require.NoError(t, astopo.ConnectP2C(as2, as3))
	require.NoError(t, astopo.ConnectP2C(as1, as3))
	require.NoError(t, astopo.ConnectP2C(as3, as5))
	require.NoError(t, astopo.ConnectP2C(as3, as4))
	require.NoError(t, astopo.ConnectP2P(as5, as4))
	_, err := topo.AddIXP(1, as1, as2)
	require.NoError(t, err)
	_, err = topo.AddIXP(3, as5, as4, as3)
	require.NoError(t, err)
	require.NoError(t, topo.Verify())
	return topo
}
