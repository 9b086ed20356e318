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

package export_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/log/testlog"
	"github.com/ms1450/mini-internet-simulation/pkg/private/xtest"
	"github.com/ms1450/mini-internet-simulation/private/export"
	"github.com/ms1450/mini-internet-simulation/private/storage/snapshot"
	"github.com/ms1450/mini-internet-simulation/private/topogen"
)

var update = xtest.UpdateGoldenFiles()

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var allFiles = []string{
	"AS_config.txt",
	"Topology_5.txt",
	"Topology_Links_5.csv",
	"Topology_Nodes_5.csv",
	"aslevel_links.txt",
	"aslevel_links_students.txt",
	"l3_links.txt",
	"l3_routers.txt",
	"l3_routers_krill.txt",
}

func TestExportGolden(t *testing.T) {
	dir := t.TempDir()
	w := export.NewWriter(export.Options{Dir: dir, IXPOffset: 80}, testlog.NewLogger(t))
	res, err := w.Export(context.Background(), xtest.SmallTopology(t))
	require.NoError(t, err)
	assert.Equal(t, allFiles, res.Written)
	assert.Empty(t, res.Skipped)

	golden := []string{
		"AS_config.txt",
		"aslevel_links.txt",
		"aslevel_links_students.txt",
		"Topology_5.txt",
		"Topology_Nodes_5.csv",
		"Topology_Links_5.csv",
	}
	for _, name := range golden {
		t.Run(name, func(t *testing.T) {
			raw, err := os.ReadFile(filepath.Join(dir, name))
			require.NoError(t, err)
			xtest.AssertGolden(t, *update, raw, name)
		})
	}

	krill, err := os.ReadFile(filepath.Join(dir, export.KrillRoutersFile))
	require.NoError(t, err)
	assert.Contains(t, string(krill), "RTRA\tDNS\tkrill:miniinterneteth/d_host\tvtysh\n")
	links, err := os.ReadFile(filepath.Join(dir, export.RouterLinksFile))
	require.NoError(t, err)
	assert.Equal(t, "RTRA\tRTRB\t100000\t10ms\nRTRB\tRTRC\t100000\t10ms\nRTRC\tRTRA\t100000\t10ms\n",
		string(links))
}

func TestExportFormats(t *testing.T) {
	testCases := map[string]struct {
		formats  []string
		expected []string
	}{
		"all by default": {
			expected: allFiles,
		},
		"csv": {
			formats:  []string{export.CSV},
			expected: []string{"Topology_Links_5.csv", "Topology_Nodes_5.csv"},
		},
		"text": {
			formats:  []string{export.Text},
			expected: []string{"Topology_5.txt"},
		},
		"miniinternet": {
			formats: []string{export.MiniInternet},
			expected: []string{
				"AS_config.txt",
				"aslevel_links.txt",
				"aslevel_links_students.txt",
				"l3_links.txt",
				"l3_routers.txt",
				"l3_routers_krill.txt",
			},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			w := export.NewWriter(export.Options{Dir: dir, Formats: tc.formats}, nil)
			res, err := w.Export(context.Background(), xtest.SmallTopology(t))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, res.Written)
			assert.ElementsMatch(t, tc.expected, xtest.MustReadDir(t, dir))
		})
	}
}

func TestExportExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, export.ASConfigFile)
	require.NoError(t, os.WriteFile(existing, []byte("keep\n"), 0o644))
	topo := xtest.SmallTopology(t)

	w := export.NewWriter(export.Options{Dir: dir}, testlog.NewLogger(t))
	res, err := w.Export(context.Background(), topo)
	require.NoError(t, err)
	assert.Equal(t, []string{export.ASConfigFile}, res.Skipped)
	assert.Len(t, res.Written, len(allFiles)-1)
	raw, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(raw))

	res, err = w.Export(context.Background(), topo)
	require.NoError(t, err)
	assert.Empty(t, res.Written)
	assert.Equal(t, allFiles, res.Skipped)

	w.Overwrite = true
	res, err = w.Export(context.Background(), topo)
	require.NoError(t, err)
	assert.Equal(t, allFiles, res.Written)
	raw, err = os.ReadFile(existing)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "1\tAS\tConfig\tl3_routers_krill.txt")
}

func TestExportAddressSpace(t *testing.T) {
	large := func(t *testing.T) *astopo.Topology {
		topo := astopo.New()
		for id := astopo.ASID(1); id <= 256; id++ {
			_, err := topo.AddAS(id, astopo.Stub, 0, 0)
			require.NoError(t, err)
		}
		return topo
	}
	testCases := map[string]struct {
		topo    func(t *testing.T) *astopo.Topology
		opts    export.Options
		wantErr bool
	}{
		"as id too large": {
			topo:    large,
			wantErr: true,
		},
		"as id too large for csv only": {
			topo: large,
			opts: export.Options{Formats: []string{export.CSV}},
		},
		"ixp offset too large": {
			topo:    func(t *testing.T) *astopo.Topology { return xtest.SmallTopology(t) },
			opts:    export.Options{IXPOffset: 253},
			wantErr: true,
		},
		"largest ixp offset": {
			topo: func(t *testing.T) *astopo.Topology { return xtest.SmallTopology(t) },
			opts: export.Options{IXPOffset: 252},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			tc.opts.Dir = filepath.Join(t.TempDir(), "out")
			_, err := export.NewWriter(tc.opts, nil).Export(context.Background(), tc.topo(t))
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, export.ErrAddressSpace)
			_, err = os.Stat(tc.opts.Dir)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestExportInvalidOptions(t *testing.T) {
	testCases := map[string]export.Options{
		"negative offset": {IXPOffset: -1},
		"unknown format":  {Formats: []string{"graphml"}},
	}
	for name, opts := range testCases {
		t.Run(name, func(t *testing.T) {
			opts.Dir = t.TempDir()
			_, err := export.NewWriter(opts, nil).Export(context.Background(),
				xtest.SmallTopology(t))
			assert.Error(t, err)
		})
	}
}

func TestExportCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	_, err := export.NewWriter(export.Options{Dir: dir}, nil).Export(ctx, xtest.SmallTopology(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, xtest.MustReadDir(t, dir))
}

// TestExportResumed checks that exporting a restored snapshot yields the same
// files as exporting the generated topology directly.
func TestExportResumed(t *testing.T) {
	gen := topogen.Generator{Params: topogen.DefaultParams()}
	topo, _, err := gen.Generate(context.Background(), 42)
	require.NoError(t, err)
	restored, err := snapshot.New(topo, 42).Topology()
	require.NoError(t, err)

	direct, resumed := t.TempDir(), t.TempDir()
	opts := export.Options{Dir: direct, IXPOffset: 80}
	_, err = export.NewWriter(opts, nil).Export(context.Background(), topo)
	require.NoError(t, err)
	opts.Dir = resumed
	_, err = export.NewWriter(opts, nil).Export(context.Background(), restored)
	require.NoError(t, err)

	names := xtest.MustReadDir(t, direct)
	require.Len(t, names, 9)
	assert.Equal(t, names, xtest.MustReadDir(t, resumed))
	for _, name := range names {
		a, err := os.ReadFile(filepath.Join(direct, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(resumed, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}
}
