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

package launcher_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
	"github.com/ms1450/mini-internet-simulation/private/app"
	"github.com/ms1450/mini-internet-simulation/private/app/launcher"
	"github.com/ms1450/mini-internet-simulation/private/config"
)

type testConfig struct {
	Seed    int64      `toml:"seed"`
	Logging log.Config `toml:"log,omitempty"`
}

func (c *testConfig) InitDefaults() { c.Logging.InitDefaults() }

func (c *testConfig) Validate() error {
	if c.Seed < 0 {
		return serrors.New("negative seed", "seed", c.Seed)
	}
	return c.Logging.Validate()
}

func (c *testConfig) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, "seed = 1\n")
}

func (c *testConfig) LogConfig() *log.Config { return &c.Logging }

func (c *testConfig) Override(v *viper.Viper) error {
	if v.IsSet("seed") {
		seed, err := cast.ToInt64E(v.Get("seed"))
		if err != nil {
			return err
		}
		c.Seed = seed
	}
	if v.IsSet("log.console.level") {
		c.Logging.Console.Level = v.GetString("log.console.level")
	}
	return nil
}

// newApp returns an application with a "run" command that stores the loaded
// config in loaded.
func newApp(loaded **testConfig) *launcher.Application {
	return &launcher.Application{
		Name:      "testapp",
		NewConfig: func() launcher.Config { return &testConfig{Seed: 1} },
		Commands: []func(a *launcher.Application) *cobra.Command{
			func(a *launcher.Application) *cobra.Command {
				cmd := &cobra.Command{
					Use:  "run",
					Args: cobra.NoArgs,
					RunE: func(cmd *cobra.Command, args []string) error {
						cfg, err := a.LoadConfig(cmd, launcher.Flags{"seed": "seed"})
						if err != nil {
							return err
						}
						*loaded = cfg.(*testConfig)
						return nil
					},
				}
				cmd.Flags().Int64("seed", 0, "seed")
				return cmd
			},
		},
		Registry:    prometheus.NewRegistry(),
		ErrorWriter: io.Discard,
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "testapp.toml")
	require.NoError(t, os.WriteFile(file, []byte("seed = 5\n"), 0o644))
	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("unknown = 5\n"), 0o644))

	testCases := map[string]struct {
		args         []string
		env          map[string]string
		expectedSeed int64
		assertErr    assert.ErrorAssertionFunc
	}{
		"defaults": {
			args:         []string{"run"},
			expectedSeed: 1,
			assertErr:    assert.NoError,
		},
		"file": {
			args:         []string{"run", "--config", file},
			expectedSeed: 5,
			assertErr:    assert.NoError,
		},
		"file from env": {
			args:         []string{"run"},
			env:          map[string]string{"TESTAPP_CONFIG": file},
			expectedSeed: 5,
			assertErr:    assert.NoError,
		},
		"env over file": {
			args:         []string{"run", "--config", file},
			env:          map[string]string{"TESTAPP_SEED": "7"},
			expectedSeed: 7,
			assertErr:    assert.NoError,
		},
		"flag over env": {
			args:         []string{"run", "--config", file, "--seed", "9"},
			env:          map[string]string{"TESTAPP_SEED": "7"},
			expectedSeed: 9,
			assertErr:    assert.NoError,
		},
		"unknown key": {
			args:      []string{"run", "--config", bad},
			assertErr: assert.Error,
		},
		"missing file": {
			args:      []string{"run", "--config", filepath.Join(dir, "missing.toml")},
			assertErr: assert.Error,
		},
		"invalid": {
			args:      []string{"run", "--seed=-1"},
			assertErr: assert.Error,
		},
		"invalid log level": {
			args:      []string{"run", "--log.level", "trace"},
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			var loaded *testConfig
			err := newApp(&loaded).Execute(context.Background(), tc.args)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			require.NotNil(t, loaded)
			assert.Equal(t, tc.expectedSeed, loaded.Seed)
		})
	}
}

func TestLogLevelFlag(t *testing.T) {
	var loaded *testConfig
	a := newApp(&loaded)
	require.NoError(t, a.Execute(context.Background(), []string{"run", "--log.level", "error"}))
	assert.Equal(t, "error", loaded.Logging.Console.Level)
}

func TestBuiltinCommands(t *testing.T) {
	testCases := map[string]struct {
		args     []string
		contains string
	}{
		"sample": {
			args:     []string{"sample"},
			contains: "seed = 1",
		},
		"version": {
			args:     []string{"version"},
			contains: "Version:",
		},
		"completion": {
			args:     []string{"completion", "--shell", "zsh"},
			contains: "#compdef testapp",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var loaded *testConfig
			a := newApp(&loaded)
			var out bytes.Buffer
			a.Command().SetOut(&out)
			require.NoError(t, a.Execute(context.Background(), tc.args))
			assert.Contains(t, out.String(), tc.contains)
		})
	}
}

func TestUnknownFlagBinding(t *testing.T) {
	a := &launcher.Application{
		Name:      "testapp",
		NewConfig: func() launcher.Config { return &testConfig{} },
		Commands: []func(a *launcher.Application) *cobra.Command{
			func(a *launcher.Application) *cobra.Command {
				return &cobra.Command{
					Use: "run",
					RunE: func(cmd *cobra.Command, args []string) error {
						_, err := a.LoadConfig(cmd, launcher.Flags{"seed": "missing"})
						return err
					},
				}
			},
		},
		Registry:    prometheus.NewRegistry(),
		ErrorWriter: io.Discard,
	}
	err := a.Execute(context.Background(), []string{"run"})
	assert.ErrorContains(t, err, "unknown flag")
	assert.Equal(t, -1, app.ExitCode(err))
}
