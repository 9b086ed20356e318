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

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libconfig "github.com/ms1450/mini-internet-simulation/private/config"
	"github.com/ms1450/mini-internet-simulation/private/topogen"
	"github.com/ms1450/mini-internet-simulation/topogen/config"
)

func TestConfigSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg config.Config
	cfg.Sample(&sample, nil, nil)

	var decoded config.Config
	require.NoError(t, libconfig.Decode(sample.Bytes(), &decoded))
	assert.Equal(t, config.New(), &decoded)
	assert.NoError(t, decoded.Validate())
}

func TestNewMatchesDefaultParams(t *testing.T) {
	assert.Equal(t, topogen.DefaultParams(), config.New().Params())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "topogen.toml")
	raw := `
[general]
seed = 7
output_dir = "/tmp/out"

[population]
tier1 = 0
stub = 3
require_transit = true

[degrees]
stub_p2c = [0, 0]

[snapshot]
path = "/var/lib/topo.db"
`
	require.NoError(t, os.WriteFile(file, []byte(raw), 0o644))

	cfg := config.New()
	require.NoError(t, libconfig.LoadFile(file, cfg))
	cfg.InitDefaults()
	require.NoError(t, cfg.Validate())

	p := cfg.Params()
	assert.Equal(t, int64(7), cfg.General.Seed)
	assert.Equal(t, topogen.Population{Tier1: 0, Transit: 9, Stub: 3}, p.Population)
	assert.True(t, p.RequireTransit)
	assert.Equal(t, topogen.Range{}, p.Degrees.Stub.P2C)
	assert.Equal(t, topogen.Range{Min: 2, Max: 3}, p.Degrees.Transit.P2P)
	assert.Equal(t, "/var/lib/topo.db", cfg.SnapshotPath())
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	file := filepath.Join(t.TempDir(), "topogen.toml")
	require.NoError(t, os.WriteFile(file, []byte("[general]\nsed = 1\n"), 0o644))
	assert.Error(t, libconfig.LoadFile(file, config.New()))
}

func TestConfigValidate(t *testing.T) {
	testCases := map[string]struct {
		modify    func(cfg *config.Config)
		assertErr assert.ErrorAssertionFunc
	}{
		"defaults": {
			modify:    func(cfg *config.Config) {},
			assertErr: assert.NoError,
		},
		"negative count": {
			modify:    func(cfg *config.Config) { cfg.Population.Transit = -2 },
			assertErr: assert.Error,
		},
		"short range": {
			modify:    func(cfg *config.Config) { cfg.Degrees.StubP2P = config.Range{1} },
			assertErr: assert.Error,
		},
		"inverted range": {
			modify:    func(cfg *config.Config) { cfg.Degrees.Tier1P2C = config.Range{9, 3} },
			assertErr: assert.Error,
		},
		"probability": {
			modify:    func(cfg *config.Config) { cfg.Probabilities.Same = -0.1 },
			assertErr: assert.Error,
		},
		"negative offset": {
			modify:    func(cfg *config.Config) { cfg.Export.IXPOffset = -80 },
			assertErr: assert.Error,
		},
		"unknown format": {
			modify:    func(cfg *config.Config) { cfg.Export.Formats = []string{"graphml"} },
			assertErr: assert.Error,
		},
		"bad log level": {
			modify:    func(cfg *config.Config) { cfg.Logging.Console.Level = "trace" },
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg := config.New()
			tc.modify(cfg)
			tc.assertErr(t, cfg.Validate())
		})
	}
}

func TestSnapshotPath(t *testing.T) {
	cfg := config.New()
	cfg.General.OutputDir = "out"
	assert.Equal(t, filepath.Join("out", "snapshot.json"), cfg.SnapshotPath())
	cfg.Snapshot.Path = ""
	assert.Equal(t, filepath.Join("out", "snapshot.json"), cfg.SnapshotPath())
	cfg.Snapshot.Path = "topo.yaml"
	assert.Equal(t, filepath.Join("out", "topo.yaml"), cfg.SnapshotPath())
}

func TestOverride(t *testing.T) {
	testCases := map[string]struct {
		env       map[string]string
		modify    func(v *viper.Viper)
		expected  func(cfg *config.Config)
		assertErr assert.ErrorAssertionFunc
	}{
		"nothing set": {
			expected:  func(*config.Config) {},
			assertErr: assert.NoError,
		},
		"environment": {
			env: map[string]string{
				"TOPOGEN_GENERAL_SEED":       "7",
				"TOPOGEN_EXPORT_IXP_OFFSET":  "80",
				"TOPOGEN_EXPORT_OVERWRITE":   "true",
				"TOPOGEN_LOG_CONSOLE_LEVEL":  "debug",
				"TOPOGEN_GENERAL_OUTPUT_DIR": "/tmp/topo",
			},
			expected: func(cfg *config.Config) {
				cfg.General.Seed = 7
				cfg.General.OutputDir = "/tmp/topo"
				cfg.Export.IXPOffset = 80
				cfg.Export.Overwrite = true
				cfg.Logging.Console.Level = "debug"
			},
			assertErr: assert.NoError,
		},
		"explicit value wins over environment": {
			env: map[string]string{"TOPOGEN_GENERAL_SEED": "7"},
			modify: func(v *viper.Viper) {
				v.Set(config.KeySeed, 9)
				v.Set(config.KeySnapshotPath, "topo.db")
			},
			expected: func(cfg *config.Config) {
				cfg.General.Seed = 9
				cfg.Snapshot.Path = "topo.db"
			},
			assertErr: assert.NoError,
		},
		"malformed": {
			env:       map[string]string{"TOPOGEN_EXPORT_IXP_OFFSET": "eighty"},
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			for k, val := range tc.env {
				t.Setenv(k, val)
			}
			v := viper.New()
			v.SetEnvPrefix("TOPOGEN")
			v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			v.AutomaticEnv()
			if tc.modify != nil {
				tc.modify(v)
			}

			cfg := config.New()
			err := cfg.Override(v)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			expected := config.New()
			tc.expected(expected)
			assert.Equal(t, expected, cfg)
		})
	}
}

func TestExportOptions(t *testing.T) {
	cfg := config.New()
	cfg.General.OutputDir = "out"
	cfg.Export.IXPOffset = 80
	opts := cfg.ExportOptions()
	assert.Equal(t, "out", opts.Dir)
	assert.Equal(t, 80, opts.IXPOffset)
	assert.Equal(t, config.Formats, opts.Formats)
	assert.NoError(t, opts.Validate())
}
