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
	"encoding/csv"
	"fmt"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
)

// Link kinds of the link table.
const (
	LinkP2P = "P2P"
	LinkP2C = "P2C"
	LinkIXP = "IXP"
)

// NodeIXP is the node type of exchange points in the node table.
const NodeIXP = "IXP"

// Dataset header rows.
var (
	NodesHeader = []string{"Node", "Type"}
	LinksHeader = []string{"Name", "Type", "Current", "Connection"}
)

// ListingFile is the name of the human-readable listing of a topology with n
// ASes.
func ListingFile(n int) string { return fmt.Sprintf("Topology_%d.txt", n) }

// NodesFile is the name of the node table of a topology with n ASes.
func NodesFile(n int) string { return fmt.Sprintf("Topology_Nodes_%d.csv", n) }

// LinksFile is the name of the link table of a topology with n ASes.
func LinksFile(n int) string { return fmt.Sprintf("Topology_Links_%d.csv", n) }

func (v *view) text() []artifact {
	return []artifact{{name: ListingFile(len(v.ases)), render: v.listing}}
}

func (v *view) tables() []artifact {
	return []artifact{
		{name: NodesFile(len(v.ases)), render: v.nodes},
		{name: LinksFile(len(v.ases)), render: v.links},
	}
}

func (v *view) listing(buf *bytes.Buffer) error {
	for _, a := range v.ases {
		fmt.Fprintf(buf, "AS%d (%s)\t- Peers: %s\t- Providers: %s\t- Customers: %s\t- IXP: %s\n",
			a.ID, a.Tier,
			idList(byID(a.Peers()), asID),
			idList(byID(a.Providers()), asID),
			idList(byID(a.Customers()), asID),
			idList(ixpsByID(a.IXPs()), v.ixpID),
		)
	}
	for _, x := range v.ixps {
		fmt.Fprintf(buf, "%s\t- Connections: %s\n", v.ixpName(x), idList(x.Members(), asID))
	}
	return nil
}

// Node is a row of the node table.
type Node struct {
	Name string
	Type string
}

// Record returns the CSV record of n.
func (n Node) Record() []string { return []string{n.Name, n.Type} }

// Link is a row of the link table. A is the endpoint the link is listed
// under, B the other one.
type Link struct {
	Kind string
	A    string
	B    string
}

// Name is the display name of the link.
func (l Link) Name() string { return l.A + " - " + l.B }

// Record returns the CSV record of l.
func (l Link) Record() []string { return []string{l.Name(), l.Kind, l.A, l.B} }

// Nodes returns the node table of topo: all ASes, then all IXPs, in
// identifier order.
func Nodes(topo *astopo.Topology, ixpOffset int) []Node {
	return newView(topo, ixpOffset).nodeRows()
}

// Links returns the link table of topo. Each AS contributes its peerings
// with higher identifiers, its customers and its exchange point memberships.
func Links(topo *astopo.Topology, ixpOffset int) []Link {
	return newView(topo, ixpOffset).linkRows()
}

func (v *view) nodeRows() []Node {
	nodes := make([]Node, 0, len(v.ases)+len(v.ixps))
	for _, a := range v.ases {
		nodes = append(nodes, Node{Name: a.ID.String(), Type: a.Tier.Label()})
	}
	for _, x := range v.ixps {
		nodes = append(nodes, Node{Name: v.ixpName(x), Type: NodeIXP})
	}
	return nodes
}

func (v *view) linkRows() []Link {
	var links []Link
	for _, a := range v.ases {
		for _, p := range byID(a.Peers()) {
			if p.ID > a.ID {
				links = append(links, Link{Kind: LinkP2P, A: a.ID.String(), B: p.ID.String()})
			}
		}
		for _, c := range byID(a.Customers()) {
			links = append(links, Link{Kind: LinkP2C, A: a.ID.String(), B: c.ID.String()})
		}
		for _, x := range ixpsByID(a.IXPs()) {
			links = append(links, Link{Kind: LinkIXP, A: a.ID.String(), B: v.ixpName(x)})
		}
	}
	return links
}

func (v *view) nodes(buf *bytes.Buffer) error {
	w := csv.NewWriter(buf)
	if err := w.Write(NodesHeader); err != nil {
		return err
	}
	for _, n := range v.nodeRows() {
		if err := w.Write(n.Record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (v *view) links(buf *bytes.Buffer) error {
	w := csv.NewWriter(buf)
	if err := w.Write(LinksHeader); err != nil {
		return err
	}
	for _, l := range v.linkRows() {
		if err := w.Write(l.Record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
