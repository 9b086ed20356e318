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

package topometrics

import (
	"math"
	"slices"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/private/export"
)

// Stats summarizes a distribution of counts.
type Stats struct {
	Min  int     `json:"min" yaml:"min"`
	Max  int     `json:"max" yaml:"max"`
	Mean float64 `json:"mean" yaml:"mean"`
}

func newStats(values []int) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	s := Stats{Min: slices.Min(values), Max: slices.Max(values)}
	var sum int
	for _, v := range values {
		sum += v
	}
	s.Mean = math.Round(float64(sum)/float64(len(values))*100) / 100
	return s
}

// Summary holds the metrics of a graph.
type Summary struct {
	ASes int `json:"ases" yaml:"ases"`
	IXPs int `json:"ixps" yaml:"ixps"`
	// NodeTypes counts nodes per type. It is empty without a node table.
	NodeTypes map[string]int `json:"node_types,omitempty" yaml:"node_types,omitempty"`
	Links     int            `json:"links" yaml:"links"`
	LinkKinds map[string]int `json:"link_kinds" yaml:"link_kinds"`
	// NonIXPLinks counts the links without an exchange point endpoint.
	NonIXPLinks int `json:"non_ixp_links" yaml:"non_ixp_links"`
	// NonIXPShare is NonIXPLinks as a percentage of all links.
	NonIXPShare float64 `json:"non_ixp_share" yaml:"non_ixp_share"`
	// Degree is the number of links per AS, exchange point memberships
	// included.
	Degree Stats `json:"as_degree" yaml:"as_degree"`
	// IXPSize is the number of members per exchange point.
	IXPSize Stats `json:"ixp_size" yaml:"ixp_size"`
}

// Compute calculates the summary of g.
func Compute(g *Graph) Summary {
	ixps := g.ixpSet()
	s := Summary{
		IXPs:      len(ixps),
		Links:     len(g.Links),
		LinkKinds: make(map[string]int),
	}
	if len(g.Nodes) > 0 {
		s.NodeTypes = make(map[string]int)
		for _, n := range g.Nodes {
			s.NodeTypes[n.Type]++
		}
	}

	degree := make(map[string]int)
	members := make(map[string]int)
	for _, n := range g.Nodes {
		if _, ok := ixps[n.Name]; ok {
			members[n.Name] = 0
		} else {
			degree[n.Name] = 0
		}
	}
	for _, l := range g.Links {
		s.LinkKinds[l.Kind]++
		_, aIXP := ixps[l.A]
		_, bIXP := ixps[l.B]
		if !aIXP && !bIXP {
			s.NonIXPLinks++
		}
		for _, end := range []struct {
			name  string
			isIXP bool
		}{{l.A, aIXP}, {l.B, bIXP}} {
			if end.isIXP {
				members[end.name]++
			} else {
				degree[end.name]++
			}
		}
	}
	s.ASes = len(degree)
	if s.Links > 0 {
		s.NonIXPShare = math.Round(float64(s.NonIXPLinks)/float64(s.Links)*10000) / 100
	}
	s.Degree = newStats(mapValues(degree))
	s.IXPSize = newStats(mapValues(members))
	return s
}

func mapValues(m map[string]int) []int {
	values := make([]int, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	return values
}

// NodeTypeOrder is the display order of node types.
var NodeTypeOrder = []string{
	astopo.Tier1.Label(), astopo.Transit.Label(), astopo.Stub.Label(), export.NodeIXP,
}

// LinkKindOrder is the display order of link kinds.
var LinkKindOrder = []string{export.LinkP2C, export.LinkP2P, export.LinkIXP}
