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

package astopo

import (
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Topology is the registry of all ASes and IXPs of a run.
//
// ASes and IXPs are kept in the order they were added, which is also id
// order because ids must increase monotonically. A Topology is not safe for
// concurrent mutation. Concurrent readers are fine once generation is done.
type Topology struct {
	ases  []*AS
	ixps  []*IXP
	asIdx map[ASID]*AS
}

// New returns an empty topology.
func New() *Topology {
	return &Topology{
		asIdx: make(map[ASID]*AS),
	}
}

// AddAS adds a new AS. The id must be larger than the id of every AS added
// before.
func (t *Topology) AddAS(id ASID, tier Tier, p2pTarget, p2cTarget int) (*AS, error) {
	if id == 0 || (len(t.ases) > 0 && id <= t.ases[len(t.ases)-1].ID) {
		return nil, serrors.JoinNoStack(ErrInvalidID, nil, "as", id)
	}
	if tier < Tier1 || tier > Stub {
		return nil, serrors.New("invalid tier", "as", id, "tier", uint8(tier))
	}
	if p2pTarget < 0 || p2cTarget < 0 {
		return nil, serrors.New("negative degree target", "as", id,
			"p2p_target", p2pTarget, "p2c_target", p2cTarget)
	}
	a := &AS{ID: id, Tier: tier, P2PTarget: p2pTarget, P2CTarget: p2cTarget}
	t.ases = append(t.ases, a)
	t.asIdx[id] = a
	return a, nil
}

// AddIXP creates an exchange point with the given members and records the
// membership on every member. The id must be larger than the id of every IXP
// added before. At least two distinct members are required. On error the
// topology is left untouched.
func (t *Topology) AddIXP(id IXPID, members ...*AS) (*IXP, error) {
	if id == 0 || (len(t.ixps) > 0 && id <= t.ixps[len(t.ixps)-1].ID) {
		return nil, serrors.JoinNoStack(ErrInvalidID, nil, "ixp", id)
	}
	seen := make(map[*AS]struct{}, len(members))
	for _, m := range members {
		if _, ok := seen[m]; ok {
			return nil, serrors.JoinNoStack(ErrInvalidIXP, nil, "ixp", id,
				"reason", "duplicate member", "as", m.ID)
		}
		if t.asIdx[m.ID] != m {
			return nil, serrors.JoinNoStack(ErrInvalidIXP, nil, "ixp", id,
				"reason", "unknown member", "as", m.ID)
		}
		seen[m] = struct{}{}
	}
	if len(members) < 2 {
		return nil, serrors.JoinNoStack(ErrInvalidIXP, nil, "ixp", id,
			"reason", "too few members", "members", len(members))
	}
	x := &IXP{ID: id, members: append([]*AS(nil), members...)}
	for _, m := range members {
		m.ixps = append(m.ixps, x)
	}
	t.ixps = append(t.ixps, x)
	return x, nil
}

// AS returns the AS with the given id, or nil if there is none.
func (t *Topology) AS(id ASID) *AS {
	return t.asIdx[id]
}

// ASes returns all ASes ordered by id. The slice must not be modified.
func (t *Topology) ASes() []*AS { return t.ases }

// IXPs returns all exchange points ordered by id. The slice must not be
// modified.
func (t *Topology) IXPs() []*IXP { return t.ixps }

// ByTier returns the ASes of the given tier ordered by id.
func (t *Topology) ByTier(tier Tier) []*AS {
	var r []*AS
	for _, a := range t.ases {
		if a.Tier == tier {
			r = append(r, a)
		}
	}
	return r
}

// EdgeCounts is the number of distinct edges per relation kind.
type EdgeCounts struct {
	P2C         int
	P2P         int
	Memberships int
}

// Edges counts the distinct edges in the topology.
func (t *Topology) Edges() EdgeCounts {
	var c EdgeCounts
	for _, a := range t.ases {
		c.P2C += len(a.customers)
		c.P2P += len(a.peers)
		c.Memberships += len(a.ixps)
	}
	c.P2P /= 2
	return c
}
