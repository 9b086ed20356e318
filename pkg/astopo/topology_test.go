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

package astopo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
)

func mustAS(t *testing.T, topo *astopo.Topology, id astopo.ASID, tier astopo.Tier) *astopo.AS {
	t.Helper()
	a, err := topo.AddAS(id, tier, 0, 0)
	require.NoError(t, err)
	return a
}

func TestAddAS(t *testing.T) {
	topo := astopo.New()
	mustAS(t, topo, 1, astopo.Tier1)
	mustAS(t, topo, 3, astopo.Stub)

	testCases := map[string]struct {
		id        astopo.ASID
		tier      astopo.Tier
		p2p, p2c  int
		assertErr assert.ErrorAssertionFunc
	}{
		"zero id":         {id: 0, tier: astopo.Stub, assertErr: assert.Error},
		"duplicate id":    {id: 3, tier: astopo.Stub, assertErr: assert.Error},
		"decreasing id":   {id: 2, tier: astopo.Stub, assertErr: assert.Error},
		"invalid tier":    {id: 4, tier: 0, assertErr: assert.Error},
		"negative target": {id: 4, tier: astopo.Stub, p2c: -1, assertErr: assert.Error},
		"valid":           {id: 4, tier: astopo.Transit, p2p: 2, p2c: 5, assertErr: assert.NoError},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			topo := astopo.New()
			mustAS(t, topo, 1, astopo.Tier1)
			mustAS(t, topo, 3, astopo.Stub)
			_, err := topo.AddAS(tc.id, tc.tier, tc.p2p, tc.p2c)
			tc.assertErr(t, err)
		})
	}
	assert.Equal(t, []astopo.ASID{1, 3}, astopo.IDs(topo.ASes()))
	assert.Nil(t, topo.AS(2))
	assert.Equal(t, astopo.Tier1, topo.AS(1).Tier)
}

func TestConnectP2C(t *testing.T) {
	topo := astopo.New()
	t1 := mustAS(t, topo, 1, astopo.Tier1)
	tr := mustAS(t, topo, 2, astopo.Transit)
	st := mustAS(t, topo, 3, astopo.Stub)

	require.NoError(t, astopo.ConnectP2C(t1, tr))
	require.NoError(t, astopo.ConnectP2C(tr, st))

	assert.Equal(t, []*astopo.AS{tr}, t1.Customers())
	assert.Equal(t, []*astopo.AS{t1}, tr.Providers())
	assert.Equal(t, []*astopo.AS{st}, tr.Customers())
	assert.Equal(t, 2, tr.P2CDegree())
	assert.True(t, tr.HasTier1Provider())
	assert.False(t, st.HasTier1Provider())

	testCases := map[string]struct {
		provider, customer *astopo.AS
	}{
		"self":          {provider: tr, customer: tr},
		"duplicate":     {provider: t1, customer: tr},
		"tier1 as cust": {provider: tr, customer: t1},
		"reverse edge":  {provider: st, customer: tr},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := astopo.ConnectP2C(tc.provider, tc.customer)
			assert.ErrorIs(t, err, astopo.ErrInvalidEdge)
		})
	}
	assert.NoError(t, topo.VerifyStructure())
	assert.Equal(t, astopo.EdgeCounts{P2C: 2}, topo.Edges())
}

func TestConnectP2P(t *testing.T) {
	topo := astopo.New()
	a := mustAS(t, topo, 1, astopo.Stub)
	b := mustAS(t, topo, 2, astopo.Stub)

	require.NoError(t, astopo.ConnectP2P(a, b))
	assert.True(t, a.HasPeer(b))
	assert.True(t, b.HasPeer(a))
	assert.ErrorIs(t, astopo.ConnectP2P(b, a), astopo.ErrInvalidEdge)
	assert.ErrorIs(t, astopo.ConnectP2P(a, a), astopo.ErrInvalidEdge)
	assert.Equal(t, 1, topo.Edges().P2P)
	assert.NoError(t, topo.VerifyStructure())

	provider := mustAS(t, topo, 3, astopo.Transit)
	require.NoError(t, astopo.ConnectP2C(provider, a))
	assert.ErrorIs(t, astopo.ConnectP2P(a, provider), astopo.ErrInvalidEdge)
	assert.ErrorIs(t, astopo.ConnectP2C(b, a), astopo.ErrInvalidEdge)
	assert.Equal(t, astopo.EdgeCounts{P2C: 1, P2P: 1}, topo.Edges())
}

func TestAddIXP(t *testing.T) {
	topo := astopo.New()
	a := mustAS(t, topo, 1, astopo.Tier1)
	b := mustAS(t, topo, 2, astopo.Tier1)
	c := mustAS(t, topo, 3, astopo.Stub)
	foreign := &astopo.AS{ID: 4, Tier: astopo.Stub}

	x, err := topo.AddIXP(2, a, b)
	require.NoError(t, err)
	assert.Equal(t, []*astopo.AS{a, b}, x.Members())
	assert.Equal(t, []*astopo.IXP{x}, a.IXPs())

	testCases := map[string]struct {
		id      astopo.IXPID
		members []*astopo.AS
		target  error
	}{
		"not increasing":   {id: 2, members: []*astopo.AS{a, c}, target: astopo.ErrInvalidID},
		"single member":    {id: 5, members: []*astopo.AS{c}, target: astopo.ErrInvalidIXP},
		"duplicate member": {id: 5, members: []*astopo.AS{c, c}, target: astopo.ErrInvalidIXP},
		"unknown member":   {id: 5, members: []*astopo.AS{c, foreign}, target: astopo.ErrInvalidIXP},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := topo.AddIXP(tc.id, tc.members...)
			assert.ErrorIs(t, err, tc.target)
		})
	}
	assert.Empty(t, c.IXPs(), "failed additions must not record memberships")

	// Gaps are allowed.
	_, err = topo.AddIXP(7, c, b)
	require.NoError(t, err)
	assert.Len(t, topo.IXPs(), 2)
	assert.Equal(t, 4, topo.Edges().Memberships)
	assert.NoError(t, topo.VerifyStructure())
}

func TestVerify(t *testing.T) {
	topo := astopo.New()
	t1, err := topo.AddAS(1, astopo.Tier1, 0, 1)
	require.NoError(t, err)
	tr, err := topo.AddAS(2, astopo.Transit, 0, 2)
	require.NoError(t, err)
	tr2, err := topo.AddAS(3, astopo.Transit, 0, 0)
	require.NoError(t, err)

	require.NoError(t, astopo.ConnectP2C(t1, tr))
	err = topo.Verify()
	require.Error(t, err)
	assert.ErrorIs(t, err, astopo.ErrInvariant)
	var errs interface{ Unwrap() []error }
	require.True(t, errors.As(err, &errs))
	// tr misses one P2C edge, tr2 has no Tier1 provider.
	assert.Len(t, errs.Unwrap(), 2)

	tr.P2CTarget = 1
	tr2.P2CTarget = 1
	t1.P2CTarget = 2
	require.NoError(t, astopo.ConnectP2C(t1, tr2))
	assert.NoError(t, topo.Verify())
}

func TestSequence(t *testing.T) {
	var seq astopo.Sequence[astopo.IXPID]
	assert.Equal(t, astopo.IXPID(0), seq.Last())
	assert.Equal(t, astopo.IXPID(1), seq.Next())
	assert.Equal(t, astopo.IXPID(2), seq.Next())
	assert.Equal(t, astopo.IXPID(2), seq.Last())
}

func TestTierText(t *testing.T) {
	for _, tier := range astopo.Tiers {
		b, err := tier.MarshalText()
		require.NoError(t, err)
		var got astopo.Tier
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, tier, got)
	}
	_, err := astopo.ParseTier("core")
	assert.Error(t, err)
	tier, err := astopo.ParseTier("transit")
	assert.NoError(t, err)
	assert.Equal(t, "Transit AS", tier.Label())
	assert.Equal(t, "AS12", astopo.ASID(12).String())
	assert.Equal(t, "IXP3", astopo.IXPID(3).String())
}
