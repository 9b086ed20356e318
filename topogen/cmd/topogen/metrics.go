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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
	"github.com/ms1450/mini-internet-simulation/private/app/launcher"
	"github.com/ms1450/mini-internet-simulation/private/storage"
	"github.com/ms1450/mini-internet-simulation/private/storage/snapshot"
	"github.com/ms1450/mini-internet-simulation/private/topometrics"
	"github.com/ms1450/mini-internet-simulation/topogen/config"
)

func newMetrics(a *launcher.Application) *cobra.Command {
	var flags struct {
		nodes   string
		format  string
		noColor bool
	}

	cmd := &cobra.Command{
		Use:   "metrics <snapshot|links.csv>",
		Short: "Display topology metrics",
		Example: fmt.Sprintf(`  %[1]s metrics topo/snapshot.json
  %[1]s metrics Topology_Links_50.csv --nodes Topology_Nodes_50.csv --format json`,
			a.CommandPath()),
		Long: `'metrics' summarizes a topology: the number of nodes and links, the share
of links that are not exchange point memberships, the AS degree and the
exchange point sizes.

The topology is read from a snapshot or from an exported links table. Without
a nodes table, nodes whose name starts with "IXP" are exchange points.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch flags.format {
			case topometrics.FormatHuman, topometrics.FormatJSON, topometrics.FormatYAML:
			default:
				return serrors.New("output format not supported", "format", flags.format)
			}
			cfg, err := loadConfig(a, cmd, launcher.Flags{
				config.KeyIXPOffset: "ixp-offset",
			})
			if err != nil {
				return err
			}
			g, err := loadGraph(cmd.Context(), args[0], flags.nodes, cfg.Export.IXPOffset)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colored := !flags.noColor && isTerminal(out)
			return topometrics.Compute(g).Write(out, flags.format, colored)
		},
	}
	cmd.Flags().StringVar(&flags.nodes, "nodes", "", "Nodes table of the links table")
	cmd.Flags().StringVar(&flags.format, "format", topometrics.FormatHuman,
		"Specify the output format (human|json|yaml)")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false,
		"disable colored output, implied if the output is not a terminal")
	cmd.Flags().Int("ixp-offset", 0, "Offset added to IXP ids of a snapshot")
	return cmd
}

// loadGraph reads a links table, if path has the .csv extension, or a
// snapshot.
func loadGraph(
	ctx context.Context,
	path string,
	nodes string,
	ixpOffset int,
) (*topometrics.Graph, error) {

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return topometrics.LoadFiles(path, nodes)
	}
	if nodes != "" {
		return nil, serrors.New("nodes table requires a links table", "path", path)
	}
	store, err := storage.NewSnapshotStorage(ctx, path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	topo, _, err := snapshot.Load(ctx, store)
	if err != nil {
		return nil, err
	}
	return topometrics.FromTopology(topo, ixpOffset), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
