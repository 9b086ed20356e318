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

// Package topometrics computes statistics of a topology, either directly from
// a generated topology or from the node and link tables written by the
// exporter.
package topometrics

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
	"github.com/ms1450/mini-internet-simulation/private/export"
)

// ErrMalformedTable indicates a node or link table that cannot be parsed.
var ErrMalformedTable = errors.New("malformed table")

// Graph is the node and link view of a topology. Nodes may be empty if only
// the link table is known.
type Graph struct {
	Nodes []export.Node
	Links []export.Link
}

// FromTopology returns the graph of topo.
func FromTopology(topo *astopo.Topology, ixpOffset int) *Graph {
	return &Graph{
		Nodes: export.Nodes(topo, ixpOffset),
		Links: export.Links(topo, ixpOffset),
	}
}

// LoadFiles reads the link table and, if nodesPath is not empty, the node
// table.
func LoadFiles(linksPath, nodesPath string) (*Graph, error) {
	g := &Graph{}
	var err error
	if g.Links, err = readFile(linksPath, ReadLinks); err != nil {
		return nil, err
	}
	if nodesPath == "" {
		return g, nil
	}
	if g.Nodes, err = readFile(nodesPath, ReadNodes); err != nil {
		return nil, err
	}
	return g, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, serrors.Wrap("opening table", err, "file", path)
	}
	defer f.Close()
	rows, err := read(f)
	if err != nil {
		return nil, serrors.Wrap("reading table", err, "file", path)
	}
	return rows, nil
}

// ReadNodes parses a node table.
func ReadNodes(r io.Reader) ([]export.Node, error) {
	records, err := readTable(r, export.NodesHeader)
	if err != nil {
		return nil, err
	}
	nodes := make([]export.Node, 0, len(records))
	for _, rec := range records {
		nodes = append(nodes, export.Node{Name: rec[0], Type: rec[1]})
	}
	return nodes, nil
}

// ReadLinks parses a link table. The name column is ignored.
func ReadLinks(r io.Reader) ([]export.Link, error) {
	records, err := readTable(r, export.LinksHeader)
	if err != nil {
		return nil, err
	}
	links := make([]export.Link, 0, len(records))
	for _, rec := range records {
		links = append(links, export.Link{Kind: rec[1], A: rec[2], B: rec[3]})
	}
	return links, nil
}

// readTable reads all records after checking the header row. The reader
// enforces the number of fields per record.
func readTable(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	first, err := cr.Read()
	if err == io.EOF {
		return nil, serrors.JoinNoStack(ErrMalformedTable, nil, "reason", "empty")
	}
	if err != nil {
		return nil, serrors.JoinNoStack(ErrMalformedTable, err)
	}
	if !slices.Equal(first, header) {
		return nil, serrors.JoinNoStack(ErrMalformedTable, nil,
			"expected", strings.Join(header, ","), "actual", strings.Join(first, ","))
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, serrors.JoinNoStack(ErrMalformedTable, err)
	}
	return records, nil
}

// ixpSet returns the names of the exchange points. Without a node table,
// exchange points are recognized by their name prefix.
func (g *Graph) ixpSet() map[string]struct{} {
	set := make(map[string]struct{})
	if len(g.Nodes) > 0 {
		for _, n := range g.Nodes {
			if n.Type == export.NodeIXP {
				set[n.Name] = struct{}{}
			}
		}
		return set
	}
	for _, l := range g.Links {
		for _, end := range []string{l.A, l.B} {
			if strings.HasPrefix(end, "IXP") {
				set[end] = struct{}{}
			}
		}
	}
	return set
}
