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
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v2"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Write renders s in the given format.
func (s Summary) Write(w io.Writer, format string, colored bool) error {
	switch format {
	case FormatHuman:
		s.Human(w, colored)
		return nil
	case FormatJSON:
		return s.JSON(w)
	case FormatYAML:
		return s.YAML(w)
	default:
		return serrors.New("output format not supported", "format", format)
	}
}

// Human writes s as a table.
func (s Summary) Human(w io.Writer, colored bool) {
	noColor := color.New()
	keys := noColor
	header := noColor
	if colored {
		keys = color.New(color.FgHiCyan)
		header = color.New(color.FgHiBlack)
	}

	var rows [][]string
	row := func(key string, value any) {
		rows = append(rows, []string{keys.Sprint(key), fmt.Sprint(value)})
	}
	row("ASes", s.ASes)
	for _, t := range ordered(s.NodeTypes, NodeTypeOrder) {
		row("  "+t, s.NodeTypes[t])
	}
	row("IXPs", s.IXPs)
	row("Links", s.Links)
	for _, k := range ordered(s.LinkKinds, LinkKindOrder) {
		row("  "+k, s.LinkKinds[k])
	}
	row("Non-IXP links", fmt.Sprintf("%d/%d (%.2f%%)", s.NonIXPLinks, s.Links, s.NonIXPShare))
	row("AS degree", s.Degree)
	row("IXP size", s.IXPSize)

	header.Fprintln(w, "Topology metrics")
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"METRIC", "VALUE"})
	table.AppendBulk(rows)
	table.Render()
}

func (s Stats) String() string {
	return fmt.Sprintf("min %d, max %d, mean %.2f", s.Min, s.Max, s.Mean)
}

// JSON writes s as an indented json object.
func (s Summary) JSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(s)
}

// YAML writes s as a yaml document.
func (s Summary) YAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// ordered returns the keys of m, the known ones in the given order first and
// the rest sorted.
func ordered(m map[string]int, known []string) []string {
	var keys, rest []string
	for _, k := range known {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	for k := range m {
		if !slices.Contains(known, k) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
