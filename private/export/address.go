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

package export

import (
	"errors"
	"net/netip"

	"go4.org/netipx"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// ErrAddressSpace indicates that the topology does not fit the address plan.
var ErrAddressSpace = errors.New("topology exceeds address plan")

// maxID is the largest identifier that fits into an address octet.
const maxID = 255

// Link networks are 179.<a>.<b>.0/24 for the AS pair (a, b), exchange
// networks are 180.<ixp>.0.0/24.
const (
	linkOctet     = 179
	exchangeOctet = 180
)

// linkAddr is the address of host on the link between a and b. A host of 0
// yields the link network itself.
func linkAddr(a, b astopo.ASID, host int) netip.Prefix {
	return netip.PrefixFrom(netip.AddrFrom4([4]byte{linkOctet, byte(a), byte(b), byte(host)}), 24)
}

// exchangeAddr is the address of host on the network of exchange point ixp.
func exchangeAddr(ixp, host int) netip.Prefix {
	return netip.PrefixFrom(netip.AddrFrom4([4]byte{exchangeOctet, byte(ixp), 0, byte(host)}), 24)
}

// peerPair orders the endpoints of a peering link.
func peerPair(a, b *astopo.AS) (astopo.ASID, astopo.ASID) {
	if a.ID < b.ID {
		return a.ID, b.ID
	}
	return b.ID, a.ID
}

// checkAddressPlan verifies that all identifiers fit into an address octet
// and that no two synthesized networks overlap.
func (v *view) checkAddressPlan() error {
	for _, a := range v.ases {
		if a.ID > maxID {
			return serrors.JoinNoStack(ErrAddressSpace, nil, "as", a.ID, "max", maxID)
		}
	}
	for _, x := range v.ixps {
		if id := v.ixpID(x); id > maxID {
			return serrors.JoinNoStack(ErrAddressSpace, nil,
				"ixp", x.ID, "offset", v.offset, "max", maxID)
		}
	}

	var b netipx.IPSetBuilder
	claim := func(p netip.Prefix, errCtx ...any) error {
		p = p.Masked()
		set, err := b.IPSet()
		if err != nil {
			return serrors.Wrap("building address set", err)
		}
		if set.OverlapsPrefix(p) {
			return serrors.JoinNoStack(ErrAddressSpace, nil,
				append([]any{"prefix", p, "reason", "overlap"}, errCtx...)...)
		}
		b.AddPrefix(p)
		return nil
	}
	for _, a := range v.ases {
		for _, c := range byID(a.Customers()) {
			if err := claim(linkAddr(a.ID, c.ID, 0), "provider", a.ID, "customer", c.ID); err != nil {
				return err
			}
		}
		for _, p := range byID(a.Peers()) {
			if p.ID < a.ID {
				continue
			}
			if err := claim(linkAddr(a.ID, p.ID, 0), "as", a.ID, "peer", p.ID); err != nil {
				return err
			}
		}
	}
	for _, x := range v.ixps {
		if err := claim(exchangeAddr(v.ixpID(x), 0), "ixp", v.ixpID(x)); err != nil {
			return err
		}
	}
	return nil
}
