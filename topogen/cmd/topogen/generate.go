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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/metrics"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
	"github.com/ms1450/mini-internet-simulation/private/app/flag"
	"github.com/ms1450/mini-internet-simulation/private/app/launcher"
	"github.com/ms1450/mini-internet-simulation/private/export"
	"github.com/ms1450/mini-internet-simulation/private/storage"
	"github.com/ms1450/mini-internet-simulation/private/storage/snapshot"
	"github.com/ms1450/mini-internet-simulation/private/topogen"
	"github.com/ms1450/mini-internet-simulation/topogen/config"
)

func newGenerate(a *launcher.Application) *cobra.Command {
	var flags struct {
		seed    flag.Seed
		metrics string
	}
	flags.seed.Value = config.DefaultSeed

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a topology and export it",
		Example: fmt.Sprintf(`  %[1]s generate --out topo
  %[1]s generate --config topogen.toml --seed random
  %[1]s generate --snapshot topo.db --metrics topogen.prom`, a.CommandPath()),
		Long: `'generate' builds a topology from the configured population, degree ranges
and probabilities. The topology is stored as a snapshot and exported to the
output directory.

The snapshot format is selected by the file extension (.json, .yaml, .yml,
.db, .sqlite). A relative snapshot path is resolved against the output
directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a, cmd, launcher.Flags{
				config.KeySeed:         "seed",
				config.KeyOutputDir:    "out",
				config.KeySnapshotPath: "snapshot",
			})
			if err != nil {
				return err
			}
			g := generation{
				cfg:      cfg,
				registry: a.Registry,
				logger:   log.New("cmd", "generate"),
			}
			if err := g.run(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return err
			}
			if flags.metrics != "" {
				if err := prometheus.WriteToTextfile(flags.metrics, a.Registry); err != nil {
					return serrors.Wrap("writing metrics", err, "file", flags.metrics)
				}
			}
			return nil
		},
	}
	cmd.Flags().Var(&flags.seed, "seed",
		`Seed of the random source, an integer or "random"`)
	cmd.Flags().String("out", config.DefaultOutputDir, "Output directory")
	cmd.Flags().String("snapshot", config.DefaultSnapshotName, "Snapshot path")
	cmd.Flags().StringVar(&flags.metrics, "metrics", "",
		"Write the generation metrics to this file in the Prometheus text format")
	return cmd
}

// generation is a single generate run.
type generation struct {
	cfg      *config.Config
	registry prometheus.Registerer
	logger   log.Logger
}

func (g generation) run(ctx context.Context, w io.Writer) error {
	seed := g.cfg.General.Seed
	duration := metrics.ApplyOptions(metrics.WithRegistry(g.registry)).Auto().NewGauge(
		prometheus.GaugeOpts{
			Name: "topogen_generation_duration_seconds",
			Help: "Duration of the last topology generation.",
		},
	)
	gen := topogen.Generator{
		Params:  g.cfg.Params(),
		Logger:  g.logger,
		Metrics: topogen.NewMetrics(metrics.WithRegistry(g.registry)),
	}
	start := time.Now()
	topo, report, err := gen.Generate(ctx, seed)
	if err != nil {
		return serrors.Wrap("generating topology", err, "seed", seed)
	}
	duration.Set(time.Since(start).Seconds())

	path := g.cfg.SnapshotPath()
	if err := saveSnapshot(ctx, path, topo, seed); err != nil {
		return err
	}
	res, err := export.NewWriter(g.cfg.ExportOptions(), g.logger).Export(ctx, topo)
	if err != nil {
		return serrors.Wrap("exporting topology", err)
	}
	printReport(w, topo, report)
	fmt.Fprintf(w, "Snapshot: %s\n", path)
	printResult(w, g.cfg.General.OutputDir, res)
	return nil
}

func saveSnapshot(ctx context.Context, path string, topo *astopo.Topology, seed int64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return serrors.Wrap("creating snapshot directory", err, "path", path)
	}
	store, err := storage.NewSnapshotStorage(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := snapshot.Save(ctx, store, topo, seed); err != nil {
		return serrors.Wrap("saving snapshot", err, "path", path)
	}
	return nil
}

func printReport(w io.Writer, topo *astopo.Topology, r topogen.Report) {
	fmt.Fprintf(w, "Generated topology with seed %d\n", r.Seed)
	fmt.Fprintf(w, "  ASes:        %d\n", len(topo.ASes()))
	fmt.Fprintf(w, "  IXPs:        %d (%d discarded)\n", r.IXPs.Kept, r.IXPs.Discarded)
	fmt.Fprintf(w, "  P2C links:   %d\n", r.Edges.P2C)
	fmt.Fprintf(w, "  P2P links:   %d\n", r.Edges.P2P)
	fmt.Fprintf(w, "  IXP members: %d\n", r.Edges.Memberships)
	fmt.Fprintf(w, "  Shortfalls:  %d\n", len(r.Shortfalls))
}

func printResult(w io.Writer, dir string, res export.Result) {
	fmt.Fprintf(w, "Exported %d files to %s\n", len(res.Written), dir)
	for _, name := range res.Skipped {
		fmt.Fprintf(w, "  kept existing %s\n", name)
	}
}
