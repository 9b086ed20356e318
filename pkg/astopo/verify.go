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
	"slices"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// VerifyStructure checks the relation invariants that hold at any point in
// the generation: mirrored relations, no self-loops, no duplicates, no Tier1
// customers and at least two distinct members per exchange point.
func (t *Topology) VerifyStructure() error {
	var errs serrors.List
	violation := func(reason string, ctx ...any) {
		errs = append(errs, serrors.JoinNoStack(ErrInvariant, nil,
			append([]any{"reason", reason}, ctx...)...))
	}
	for _, a := range t.ases {
		if t.asIdx[a.ID] != a {
			violation("unindexed as", "as", a.ID)
		}
		checkUnique(a, "peer", a.peers, violation)
		checkUnique(a, "provider", a.providers, violation)
		checkUnique(a, "customer", a.customers, violation)
		for _, p := range a.peers {
			if p == a {
				violation("self peering", "as", a.ID)
			}
			if !p.HasPeer(a) {
				violation("asymmetric peering", "as", a.ID, "peer", p.ID)
			}
			if a.HasProvider(p) || a.HasCustomer(p) {
				violation("peering with provider or customer", "as", a.ID, "peer", p.ID)
			}
		}
		for _, p := range a.providers {
			if p == a {
				violation("self provider", "as", a.ID)
			}
			if !p.HasCustomer(a) {
				violation("unmirrored provider", "as", a.ID, "provider", p.ID)
			}
			if a.HasCustomer(p) {
				violation("p2c cycle", "as", a.ID, "other", p.ID)
			}
		}
		for _, c := range a.customers {
			if !c.HasProvider(a) {
				violation("unmirrored customer", "as", a.ID, "customer", c.ID)
			}
		}
		if a.Tier == Tier1 && len(a.providers) > 0 {
			violation("tier1 with provider", "as", a.ID)
		}
		for _, x := range a.ixps {
			if !slices.Contains(x.members, a) {
				violation("unmirrored membership", "as", a.ID, "ixp", x.ID)
			}
		}
	}
	var last IXPID
	for _, x := range t.ixps {
		if x.ID <= last {
			violation("ixp id not increasing", "ixp", x.ID, "previous", last)
		}
		last = x.ID
		seen := make(map[*AS]struct{}, len(x.members))
		for _, m := range x.members {
			if _, ok := seen[m]; ok {
				violation("duplicate ixp member", "ixp", x.ID, "as", m.ID)
			}
			seen[m] = struct{}{}
		}
		if len(seen) < 2 {
			violation("ixp with less than two members", "ixp", x.ID)
		}
	}
	return errs.ToError()
}

// Verify checks VerifyStructure and additionally the invariants of a fully
// generated topology: every degree target equals the achieved degree, and
// every Transit AS has a Tier1 provider as long as a Tier1 AS exists.
func (t *Topology) Verify() error {
	var errs serrors.List
	if err := t.VerifyStructure(); err != nil {
		errs = append(errs, err.(serrors.List)...)
	}
	hasTier1 := len(t.ByTier(Tier1)) > 0
	for _, a := range t.ases {
		if a.P2PTarget != a.PeerDegree() {
			errs = append(errs, serrors.JoinNoStack(ErrInvariant, nil, "reason", "p2p target",
				"as", a.ID, "target", a.P2PTarget, "achieved", a.PeerDegree()))
		}
		if a.P2CTarget != a.P2CDegree() {
			errs = append(errs, serrors.JoinNoStack(ErrInvariant, nil, "reason", "p2c target",
				"as", a.ID, "target", a.P2CTarget, "achieved", a.P2CDegree()))
		}
		if hasTier1 && a.Tier == Transit && !a.HasTier1Provider() {
			errs = append(errs, serrors.JoinNoStack(ErrInvariant, nil,
				"reason", "transit without tier1 provider", "as", a.ID))
		}
	}
	return errs.ToError()
}

func checkUnique(a *AS, kind string, ases []*AS, violation func(string, ...any)) {
	seen := make(map[*AS]struct{}, len(ases))
	for _, o := range ases {
		if _, ok := seen[o]; ok {
			violation("duplicate "+kind, "as", a.ID, kind, o.ID)
		}
		seen[o] = struct{}{}
	}
}
