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
	"strconv"
)

// ASID identifies an AS.
type ASID uint32

func (id ASID) String() string {
	return "AS" + strconv.FormatUint(uint64(id), 10)
}

// AS is an Autonomous System.
//
// P2PTarget and P2CTarget hold the sampled target degrees. Connectors lower
// them to the achieved degree when they cannot be satisfied, so after
// generation they equal PeerDegree and P2CDegree respectively.
type AS struct {
	ID        ASID
	Tier      Tier
	P2PTarget int
	P2CTarget int

	peers     []*AS
	providers []*AS
	customers []*AS
	ixps      []*IXP
}

// Peers returns the P2P neighbors in insertion order.
func (a *AS) Peers() []*AS { return a.peers }

// Providers returns the ASes this AS is a customer of, in insertion order.
func (a *AS) Providers() []*AS { return a.providers }

// Customers returns the ASes this AS provides transit to, in insertion order.
func (a *AS) Customers() []*AS { return a.customers }

// IXPs returns the exchange points this AS is a member of, in insertion order.
func (a *AS) IXPs() []*IXP { return a.ixps }

// PeerDegree is the number of P2P edges.
func (a *AS) PeerDegree() int { return len(a.peers) }

// P2CDegree is the number of P2C edges on either side.
func (a *AS) P2CDegree() int { return len(a.providers) + len(a.customers) }

// SpareP2P reports whether the AS accepts more peers.
func (a *AS) SpareP2P() bool { return a.PeerDegree() < a.P2PTarget }

// SpareP2C reports whether the AS accepts more P2C edges.
func (a *AS) SpareP2C() bool { return a.P2CDegree() < a.P2CTarget }

// HasPeer reports whether o is a peer of a.
func (a *AS) HasPeer(o *AS) bool { return slices.Contains(a.peers, o) }

// HasProvider reports whether o is a provider of a.
func (a *AS) HasProvider(o *AS) bool { return slices.Contains(a.providers, o) }

// HasCustomer reports whether o is a customer of a.
func (a *AS) HasCustomer(o *AS) bool { return slices.Contains(a.customers, o) }

// HasTier1Provider reports whether any provider of a is a Tier1 AS.
func (a *AS) HasTier1Provider() bool {
	return slices.ContainsFunc(a.providers, func(p *AS) bool { return p.Tier == Tier1 })
}

func (a *AS) String() string {
	return a.ID.String() + " (" + a.Tier.String() + ")"
}

// IDs returns the identifiers of ases in order.
func IDs(ases []*AS) []ASID {
	ids := make([]ASID, 0, len(ases))
	for _, a := range ases {
		ids = append(ids, a.ID)
	}
	return ids
}

// ConnectP2C makes provider a provider of customer. Both endpoints are updated.
// Self-loops, duplicate edges, Tier1 customers and pairs that already peer are
// rejected.
func ConnectP2C(provider, customer *AS) error {
	switch {
	case provider == customer:
		return newEdgeError("self provider", provider, customer)
	case customer.Tier == Tier1:
		return newEdgeError("tier1 customer", provider, customer)
	case customer.HasProvider(provider) || provider.HasProvider(customer):
		return newEdgeError("duplicate p2c", provider, customer)
	case provider.HasPeer(customer):
		return newEdgeError("p2c between peers", provider, customer)
	}
	provider.customers = append(provider.customers, customer)
	customer.providers = append(customer.providers, provider)
	return nil
}

// ConnectP2P peers a and b. Both endpoints are updated. Self-loops, duplicate
// edges and pairs in a provider/customer relation are rejected. A pair of ASes
// has at most one link, which keeps the exported link addresses unique.
func ConnectP2P(a, b *AS) error {
	switch {
	case a == b:
		return newEdgeError("self peering", a, b)
	case a.HasPeer(b):
		return newEdgeError("duplicate p2p", a, b)
	case a.HasProvider(b) || b.HasProvider(a):
		return newEdgeError("p2p between provider and customer", a, b)
	}
	a.peers = append(a.peers, b)
	b.peers = append(b.peers, a)
	return nil
}
