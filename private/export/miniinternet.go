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
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
)

// Mini-internet file names.
const (
	ASConfigFile        = "AS_config.txt"
	ASLinksFile         = "aslevel_links.txt"
	ASLinksStudentsFile = "aslevel_links_students.txt"
	RoutersFile         = "l3_routers.txt"
	KrillRoutersFile    = "l3_routers_krill.txt"
	RouterLinksFile     = "l3_links.txt"
)

// KrillAS hosts the RPKI certificate authority.
const KrillAS astopo.ASID = 1

// Link properties of inter-AS links.
const (
	linkBandwidth = 100000
	linkDelay     = "2.5ms"
)

const (
	routersFixture = "RTRA\tDNS\thost:miniinterneteth/d_host\tvtysh\n" +
		"RTRB\tMATRIX_TARGET\troutinator:miniinterneteth/d_routinator\tvtysh\n" +
		"RTRC\tMATRIX\thost:miniinterneteth/d_host\tvtysh\n"
	krillRoutersFixture = "RTRA\tDNS\tkrill:miniinterneteth/d_host\tvtysh\n" +
		"RTRB\tMATRIX_TARGET\troutinator:miniinterneteth/d_routinator\tvtysh\n" +
		"RTRC\tMATRIX\thost:miniinterneteth/d_host\tvtysh\n"
	routerLinksFixture = "RTRA\tRTRB\t100000\t10ms\n" +
		"RTRB\tRTRC\t100000\t10ms\n" +
		"RTRC\tRTRA\t100000\t10ms\n"
)

func (v *view) miniInternet() []artifact {
	return []artifact{
		{name: ASConfigFile, render: v.asConfig},
		{name: ASLinksFile, render: v.asLinks},
		{name: ASLinksStudentsFile, render: v.asLinksStudents},
		{name: RoutersFile, render: fixture(routersFixture)},
		{name: KrillRoutersFile, render: fixture(krillRoutersFixture)},
		{name: RouterLinksFile, render: fixture(routerLinksFixture)},
	}
}

func fixture(content string) func(*bytes.Buffer) error {
	return func(buf *bytes.Buffer) error {
		buf.WriteString(content)
		return nil
	}
}

func (v *view) asConfig(buf *bytes.Buffer) error {
	for _, a := range v.ases {
		routers := RoutersFile
		if a.ID == KrillAS {
			routers = KrillRoutersFile
		}
		fmt.Fprintf(buf, "%d\tAS\tConfig\t%s\t%s\tempty.txt\tempty.txt\tempty.txt\n",
			a.ID, routers, RouterLinksFile)
	}
	for _, x := range v.ixps {
		fmt.Fprintf(buf, "%d\tIXP\tConfig\tN/A\tN/A\tN/A\tN/A\tN/A\n", v.ixpID(x))
	}
	return nil
}

// asLinks lists every link once. Peering links are written by the endpoint
// with the lower identifier.
func (v *view) asLinks(buf *bytes.Buffer) error {
	for _, a := range v.ases {
		for _, c := range byID(a.Customers()) {
			fmt.Fprintf(buf, "%d\tRTRA\tProvider\t%d\tRTRA\tCustomer\t%d\t%s\t%s\n",
				a.ID, c.ID, linkBandwidth, linkDelay, linkAddr(a.ID, c.ID, 0))
		}
		for _, p := range byID(a.Peers()) {
			if p.ID < a.ID {
				continue
			}
			fmt.Fprintf(buf, "%d\tRTRA\tPeer\t%d\tRTRA\tPeer\t%d\t%s\t%s\n",
				a.ID, p.ID, linkBandwidth, linkDelay, linkAddr(a.ID, p.ID, 0))
		}
		for _, x := range ixpsByID(a.IXPs()) {
			fmt.Fprintf(buf, "%d\tRTRB\tPeer\t%d\tNone\tPeer\t%d\t%s\t%s\n",
				a.ID, v.ixpID(x), linkBandwidth, linkDelay, otherMembers(x, a))
		}
	}
	return nil
}

// otherMembers renders the members of x except a, in membership order.
func otherMembers(x *astopo.IXP, a *astopo.AS) string {
	var ids []string
	for _, m := range x.Members() {
		if m != a {
			ids = append(ids, strconv.Itoa(int(m.ID)))
		}
	}
	return strings.Join(ids, ",")
}

// asLinksStudents lists every link from the point of view of each endpoint,
// with the interface address of that endpoint.
func (v *view) asLinksStudents(buf *bytes.Buffer) error {
	for _, a := range v.ases {
		self := int(a.ID)
		for _, c := range byID(a.Customers()) {
			fmt.Fprintf(buf, "%d\tRTRA\tProvider\t%d\tRTRA\tCustomer\t%s\n",
				a.ID, c.ID, linkAddr(a.ID, c.ID, self))
		}
		for _, p := range byID(a.Providers()) {
			fmt.Fprintf(buf, "%d\tRTRA\tCustomer\t%d\tRTRA\tProvider\t%s\n",
				a.ID, p.ID, linkAddr(p.ID, a.ID, self))
		}
		for _, p := range byID(a.Peers()) {
			lo, hi := peerPair(a, p)
			fmt.Fprintf(buf, "%d\tRTRA\tPeer\t%d\tRTRA\tPeer\t%s\n",
				a.ID, p.ID, linkAddr(lo, hi, self))
		}
		for _, x := range ixpsByID(a.IXPs()) {
			fmt.Fprintf(buf, "%d\tRTRB\tPeer\t%d\tNone\tPeer\t%s\n",
				a.ID, v.ixpID(x), exchangeAddr(v.ixpID(x), self))
		}
	}
	for _, x := range v.ixps {
		id := v.ixpID(x)
		for _, m := range x.Members() {
			fmt.Fprintf(buf, "%d\tNone\tPeer\t%d\tRTRB\tPeer\t%s\n",
				id, m.ID, exchangeAddr(id, id))
		}
	}
	return nil
}
