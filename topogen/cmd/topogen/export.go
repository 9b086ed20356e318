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

	"github.com/spf13/cobra"

	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
	"github.com/ms1450/mini-internet-simulation/private/app/launcher"
	"github.com/ms1450/mini-internet-simulation/private/export"
	"github.com/ms1450/mini-internet-simulation/private/storage"
	"github.com/ms1450/mini-internet-simulation/private/storage/snapshot"
	"github.com/ms1450/mini-internet-simulation/topogen/config"
)

func newExport(a *launcher.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <snapshot>",
		Short: "Export a stored topology",
		Example: fmt.Sprintf(`  %[1]s export topo/snapshot.json --out configs
  %[1]s export topo.db --ixp-offset 80 --overwrite`, a.CommandPath()),
		Long: `'export' writes the configuration files of a topology stored in a snapshot.
No randomness is involved, exporting the snapshot written by 'generate'
reproduces the files of that run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a, cmd, launcher.Flags{
				config.KeyOutputDir: "out",
				config.KeyIXPOffset: "ixp-offset",
				config.KeyOverwrite: "overwrite",
			})
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store, err := storage.NewSnapshotStorage(ctx, args[0])
			if err != nil {
				return err
			}
			defer store.Close()
			return runExport(ctx, cmd.OutOrStdout(), store, cfg.ExportOptions())
		},
	}
	cmd.Flags().String("out", config.DefaultOutputDir, "Output directory")
	cmd.Flags().Int("ixp-offset", 0, "Offset added to every IXP id in the exported files")
	cmd.Flags().Bool("overwrite", false, "Replace existing files")
	return cmd
}

func runExport(ctx context.Context, w io.Writer, store snapshot.Store, opts export.Options) error {
	topo, s, err := snapshot.Load(ctx, store)
	if err != nil {
		return err
	}
	logger := log.New("cmd", "export", "seed", s.Seed)
	res, err := export.NewWriter(opts, logger).Export(ctx, topo)
	if err != nil {
		return serrors.Wrap("exporting topology", err)
	}
	fmt.Fprintf(w, "Loaded topology with seed %d: %d ASes, %d IXPs\n",
		s.Seed, len(topo.ASes()), len(topo.IXPs()))
	printResult(w, opts.Dir, res)
	return nil
}
