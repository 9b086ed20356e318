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

package topometrics_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ms1450/mini-internet-simulation/pkg/private/xtest"
	"github.com/ms1450/mini-internet-simulation/private/export"
	"github.com/ms1450/mini-internet-simulation/private/topometrics"
)

func smallSummary() topometrics.Summary {
	return topometrics.Summary{
		ASes: 5,
		IXPs: 2,
		NodeTypes: map[string]int{
			"Tier 1 AS":  2,
			"Transit AS": 1,
			"Stub AS":    2,
			"IXP":        2,
		},
		Links:       12,
		LinkKinds:   map[string]int{"P2C": 5, "P2P": 2, "IXP": 5},
		NonIXPLinks: 7,
		NonIXPShare: 58.33,
		Degree:      topometrics.Stats{Min: 3, Max: 5, Mean: 3.8},
		IXPSize:     topometrics.Stats{Min: 2, Max: 3, Mean: 2.5},
	}
}

func TestComputeFromTopology(t *testing.T) {
	g := topometrics.FromTopology(xtest.SmallTopology(t), 0)
	assert.Equal(t, smallSummary(), topometrics.Compute(g))
}

func TestComputeFromFiles(t *testing.T) {
	dir := t.TempDir()
	w := export.NewWriter(export.Options{Dir: dir, Formats: []string{export.CSV}}, nil)
	_, err := w.Export(context.Background(), xtest.SmallTopology(t))
	require.NoError(t, err)
	links := filepath.Join(dir, export.LinksFile(5))
	nodes := filepath.Join(dir, export.NodesFile(5))

	testCases := map[string]struct {
		nodes    string
		expected func() topometrics.Summary
	}{
		"with nodes": {
			nodes:    nodes,
			expected: smallSummary,
		},
		"links only": {
			expected: func() topometrics.Summary {
				s := smallSummary()
				s.NodeTypes = nil
				return s
			},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			g, err := topometrics.LoadFiles(links, tc.nodes)
			require.NoError(t, err)
			assert.Equal(t, tc.expected(), topometrics.Compute(g))
		})
	}
}

func TestReadMalformed(t *testing.T) {
	testCases := map[string]string{
		"empty":        "",
		"wrong header": "Node,Type,Current,Connection\n",
		"short record": "Name,Type,Current,Connection\nAS1 - AS2,P2P,AS1\n",
	}
	for name, input := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := topometrics.ReadLinks(strings.NewReader(input))
			assert.ErrorIs(t, err, topometrics.ErrMalformedTable)
		})
	}
}

func TestComputeEmpty(t *testing.T) {
	s := topometrics.Compute(&topometrics.Graph{})
	assert.Zero(t, s.Links)
	assert.Zero(t, s.NonIXPShare)
	assert.Equal(t, topometrics.Stats{}, s.Degree)
}

func TestWrite(t *testing.T) {
	s := smallSummary()

	var human bytes.Buffer
	require.NoError(t, s.Write(&human, topometrics.FormatHuman, false))
	assert.Contains(t, human.String(), "Topology metrics")
	assert.Contains(t, human.String(), "7/12 (58.33%)")
	assert.Contains(t, human.String(), "min 3, max 5, mean 3.80")
	assert.Less(t, strings.Index(human.String(), "Tier 1 AS"),
		strings.Index(human.String(), "Stub AS"))

	var raw bytes.Buffer
	require.NoError(t, s.Write(&raw, topometrics.FormatJSON, false))
	var decoded topometrics.Summary
	require.NoError(t, json.Unmarshal(raw.Bytes(), &decoded))
	assert.Equal(t, s, decoded)

	var yml bytes.Buffer
	require.NoError(t, s.Write(&yml, topometrics.FormatYAML, false))
	assert.Contains(t, yml.String(), "non_ixp_links: 7\n")
	assert.Contains(t, yml.String(), "  P2C: 5\n")

	assert.Error(t, s.Write(&bytes.Buffer{}, "xml", false))
}
