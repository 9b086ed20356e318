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

// Package snapshot contains the persisted representation of a generated
// topology. Relations are stored as identifier lists, so a snapshot can be
// written and read back without the random source that produced it.
package snapshot

import (
	"errors"
	"slices"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Version is the current snapshot format version.
const Version = 1

var (
	// ErrIDSpace indicates a snapshot whose identifiers or relations do not
	// describe a valid topology.
	ErrIDSpace = errors.New("invalid identifier space")
	// ErrRoundTrip indicates a snapshot that reads back differently from
	// what was written.
	ErrRoundTrip = errors.New("snapshot round trip mismatch")
)

// Snapshot is a serialized topology.
type Snapshot struct {
	Version int   `json:"version" yaml:"version"`
	Seed    int64 `json:"seed" yaml:"seed"`
	ASes    []AS  `json:"ases" yaml:"ases"`
	IXPs    []IXP `json:"ixps" yaml:"ixps"`
}

// AS is a serialized AS. All identifier lists are sorted in ascending order.
type AS struct {
	ID        astopo.ASID    `json:"id" yaml:"id"`
	Tier      astopo.Tier    `json:"tier" yaml:"tier"`
	P2PTarget int            `json:"p2p_target" yaml:"p2p_target"`
	P2CTarget int            `json:"p2c_target" yaml:"p2c_target"`
	Peers     []astopo.ASID  `json:"peers" yaml:"peers"`
	Providers []astopo.ASID  `json:"providers" yaml:"providers"`
	Customers []astopo.ASID  `json:"customers" yaml:"customers"`
	IXPs      []astopo.IXPID `json:"ixps" yaml:"ixps"`
}

// IXP is a serialized exchange point. Members keep their insertion order.
type IXP struct {
	ID      astopo.IXPID  `json:"id" yaml:"id"`
	Members []astopo.ASID `json:"members" yaml:"members"`
}

// New creates the snapshot of topo.
func New(topo *astopo.Topology, seed int64) *Snapshot {
	s := &Snapshot{
		Version: Version,
		Seed:    seed,
		ASes:    make([]AS, 0, len(topo.ASes())),
		IXPs:    make([]IXP, 0, len(topo.IXPs())),
	}
	for _, a := range topo.ASes() {
		ixps := make([]astopo.IXPID, 0, len(a.IXPs()))
		for _, x := range a.IXPs() {
			ixps = append(ixps, x.ID)
		}
		slices.Sort(ixps)
		s.ASes = append(s.ASes, AS{
			ID:        a.ID,
			Tier:      a.Tier,
			P2PTarget: a.P2PTarget,
			P2CTarget: a.P2CTarget,
			Peers:     sorted(a.Peers()),
			Providers: sorted(a.Providers()),
			Customers: sorted(a.Customers()),
			IXPs:      ixps,
		})
	}
	for _, x := range topo.IXPs() {
		s.IXPs = append(s.IXPs, IXP{ID: x.ID, Members: astopo.IDs(x.Members())})
	}
	return s
}

func sorted(ases []*astopo.AS) []astopo.ASID {
	ids := astopo.IDs(ases)
	slices.Sort(ids)
	return ids
}

// Topology rebuilds the topology. AS identifiers must be exactly 1..N in
// order, IXP identifiers must be strictly increasing, every referenced
// identifier must exist and all relations must be mirrored. Violations are
// reported as ErrIDSpace.
func (s *Snapshot) Topology() (*astopo.Topology, error) {
	if s.Version != Version {
		return nil, serrors.New("unsupported snapshot version",
			"expected", Version, "actual", s.Version)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	topo := astopo.New()
	for _, a := range s.ASes {
		if _, err := topo.AddAS(a.ID, a.Tier, a.P2PTarget, a.P2CTarget); err != nil {
			return nil, serrors.JoinNoStack(ErrIDSpace, err)
		}
	}
	// Iterating in id order with sorted lists recreates sorted relation
	// lists on both endpoints.
	for _, a := range s.ASes {
		self := topo.AS(a.ID)
		for _, c := range a.Customers {
			if err := astopo.ConnectP2C(self, topo.AS(c)); err != nil {
				return nil, serrors.JoinNoStack(ErrIDSpace, err)
			}
		}
		for _, p := range a.Peers {
			if p < a.ID {
				continue
			}
			if err := astopo.ConnectP2P(self, topo.AS(p)); err != nil {
				return nil, serrors.JoinNoStack(ErrIDSpace, err)
			}
		}
	}
	for _, x := range s.IXPs {
		members := make([]*astopo.AS, 0, len(x.Members))
		for _, m := range x.Members {
			members = append(members, topo.AS(m))
		}
		if _, err := topo.AddIXP(x.ID, members...); err != nil {
			return nil, serrors.JoinNoStack(ErrIDSpace, err)
		}
	}
	if err := topo.VerifyStructure(); err != nil {
		return nil, serrors.JoinNoStack(ErrIDSpace, err)
	}
	return topo, nil
}

func (s *Snapshot) validate() error {
	n := astopo.ASID(len(s.ASes))
	for i, a := range s.ASes {
		if a.ID != astopo.ASID(i+1) {
			return serrors.JoinNoStack(ErrIDSpace, nil, "position", i, "as", a.ID)
		}
		if a.Tier < astopo.Tier1 || a.Tier > astopo.Stub {
			return serrors.JoinNoStack(ErrIDSpace, nil, "as", a.ID, "tier", uint8(a.Tier))
		}
		for _, ids := range [][]astopo.ASID{a.Peers, a.Providers, a.Customers} {
			for _, id := range ids {
				if id == 0 || id > n {
					return serrors.JoinNoStack(ErrIDSpace, nil, "as", a.ID, "unknown", id)
				}
			}
			if hasDuplicates(ids) {
				return serrors.JoinNoStack(ErrIDSpace, nil, "reason", "duplicate relation",
					"as", a.ID)
			}
		}
		if hasDuplicates(a.IXPs) {
			return serrors.JoinNoStack(ErrIDSpace, nil, "reason", "duplicate membership",
				"as", a.ID)
		}
	}
	ixps := make(map[astopo.IXPID]IXP, len(s.IXPs))
	var last astopo.IXPID
	for _, x := range s.IXPs {
		if x.ID <= last {
			return serrors.JoinNoStack(ErrIDSpace, nil, "ixp", x.ID, "previous", last)
		}
		last = x.ID
		for _, m := range x.Members {
			if m == 0 || m > n {
				return serrors.JoinNoStack(ErrIDSpace, nil, "ixp", x.ID, "unknown", m)
			}
		}
		ixps[x.ID] = x
	}

	as := func(id astopo.ASID) AS { return s.ASes[id-1] }
	for _, a := range s.ASes {
		for _, p := range a.Peers {
			if !slices.Contains(as(p).Peers, a.ID) {
				return serrors.JoinNoStack(ErrIDSpace, nil, "reason", "unmirrored peer",
					"as", a.ID, "peer", p)
			}
		}
		for _, p := range a.Providers {
			if !slices.Contains(as(p).Customers, a.ID) {
				return serrors.JoinNoStack(ErrIDSpace, nil, "reason", "unmirrored provider",
					"as", a.ID, "provider", p)
			}
		}
		for _, c := range a.Customers {
			if !slices.Contains(as(c).Providers, a.ID) {
				return serrors.JoinNoStack(ErrIDSpace, nil, "reason", "unmirrored customer",
					"as", a.ID, "customer", c)
			}
		}
		for _, id := range a.IXPs {
			x, ok := ixps[id]
			if !ok {
				return serrors.JoinNoStack(ErrIDSpace, nil, "as", a.ID, "unknown", id)
			}
			if !slices.Contains(x.Members, a.ID) {
				return serrors.JoinNoStack(ErrIDSpace, nil, "reason", "unmirrored membership",
					"as", a.ID, "ixp", id)
			}
		}
	}
	for _, x := range s.IXPs {
		for _, m := range x.Members {
			if !slices.Contains(as(m).IXPs, x.ID) {
				return serrors.JoinNoStack(ErrIDSpace, nil, "reason", "unmirrored membership",
					"as", m, "ixp", x.ID)
			}
		}
	}
	return nil
}

func hasDuplicates[T astopo.ASID | astopo.IXPID](ids []T) bool {
	c := slices.Clone(ids)
	slices.Sort(c)
	return len(slices.Compact(c)) != len(ids)
}
