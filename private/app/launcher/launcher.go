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

// Package launcher runs command line applications with a TOML configuration.
//
// The configuration is assembled from, in increasing precedence: the
// defaults of the application, the file given with --config, environment
// variables with the application prefix (for example TOPOGEN_GENERAL_SEED for
// the key general.seed) and command line flags bound to configuration keys.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/metrics"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
	"github.com/ms1450/mini-internet-simulation/private/app"
	"github.com/ms1450/mini-internet-simulation/private/app/command"
	libconfig "github.com/ms1450/mini-internet-simulation/private/config"
	"github.com/ms1450/mini-internet-simulation/private/env"
)

// Configuration keys handled by the launcher.
const (
	cfgConfigFile      = "config"
	cfgLogConsoleLevel = "log.console.level"
)

// Config is the configuration of an application.
type Config interface {
	libconfig.Config
	// LogConfig returns the logging section.
	LogConfig() *log.Config
	// Override applies the values set in the environment or through bound
	// flags.
	Override(v *viper.Viper) error
}

// Flags maps configuration keys to the names of the flags that override
// them.
type Flags map[string]string

// Application models a command line application.
type Application struct {
	// Name is the executable name. If empty, the base name of os.Args[0] is
	// used.
	Name string
	// Short is the short description of the root command.
	Short string
	// EnvPrefix is the prefix of environment overrides. If empty, the
	// upper case Name is used.
	EnvPrefix string
	// NewConfig returns a configuration holding the default values.
	NewConfig func() Config
	// Commands create the subcommands of the application.
	Commands []func(a *Application) *cobra.Command
	// Registry collects the metrics of the application. If nil, a new
	// registry is created.
	Registry *prometheus.Registry
	// ErrorWriter specifies where error output should be printed. If nil,
	// os.Stderr is used.
	ErrorWriter io.Writer

	cmd     *cobra.Command
	config  *viper.Viper
	entries log.EntriesCounter
	started bool
}

// Run executes the application with os.Args and exits the process on
// failure.
func (a *Application) Run() {
	ctx := app.WithSignal(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := a.Execute(ctx, os.Args[1:])
	if a.started {
		env.LogAppStopped(a.Name, err)
	}
	log.Flush()
	if err != nil {
		fmt.Fprintf(a.errorWriter(), "fatal error: %v\n", err)
		code := app.ExitCode(err)
		if code < 1 {
			code = 1
		}
		os.Exit(code)
	}
}

// Execute runs the command line args.
func (a *Application) Execute(ctx context.Context, args []string) error {
	cmd := a.Command()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// Command returns the root command. It is built on first use.
func (a *Application) Command() *cobra.Command {
	if a.cmd != nil {
		return a.cmd
	}
	if a.Name == "" {
		a.Name = filepath.Base(os.Args[0])
	}
	if a.EnvPrefix == "" {
		a.EnvPrefix = strings.ToUpper(a.Name)
	}
	if a.Registry == nil {
		a.Registry = prometheus.NewRegistry()
	}
	a.cmd = &cobra.Command{
		Use:           a.Name,
		Short:         a.Short,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	a.cmd.SetErr(a.errorWriter())
	a.cmd.PersistentFlags().String(cfgConfigFile, "", "Configuration file (TOML)")
	a.cmd.PersistentFlags().String("log.level", "", app.LogLevelUsage)

	a.config = viper.New()
	a.config.SetEnvPrefix(a.EnvPrefix)
	a.config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.config.AutomaticEnv()
	// Errors are impossible, the flags were registered above.
	_ = a.config.BindPFlag(cfgConfigFile, a.cmd.PersistentFlags().Lookup(cfgConfigFile))
	_ = a.config.BindPFlag(cfgLogConsoleLevel, a.cmd.PersistentFlags().Lookup("log.level"))

	entries := metrics.ApplyOptions(metrics.WithRegistry(a.Registry)).Auto().NewCounterVec(
		prometheus.CounterOpts{
			Name: "lib_log_emitted_entries_total",
			Help: "Total number of log entries emitted.",
		},
		[]string{"level"},
	)
	a.entries = log.EntriesCounter{
		Debug: entries.WithLabelValues("debug"),
		Info:  entries.WithLabelValues("info"),
		Error: entries.WithLabelValues("error"),
	}

	for _, f := range a.Commands {
		a.cmd.AddCommand(f(a))
	}
	a.cmd.AddCommand(
		a.newSample(),
		command.NewVersion(a),
		command.NewCompletion(a),
		command.NewGendocs(a),
	)
	return a.cmd
}

// CommandPath returns the path of the root command.
func (a *Application) CommandPath() string {
	return a.Command().CommandPath()
}

// LoadConfig assembles the configuration for cmd, binding the given flags of
// cmd to configuration keys. The result is validated and the logging is set
// up from it.
func (a *Application) LoadConfig(cmd *cobra.Command, flags Flags) (Config, error) {
	a.Command()
	for key, name := range flags {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			return nil, serrors.New("unknown flag", "flag", name, "key", key)
		}
		if err := a.config.BindPFlag(key, f); err != nil {
			return nil, serrors.Wrap("binding flag", err, "flag", name, "key", key)
		}
	}
	cfg := a.NewConfig()
	if file := a.config.GetString(cfgConfigFile); file != "" {
		if err := libconfig.LoadFile(file, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Override(a.config); err != nil {
		return nil, err
	}
	cfg.InitDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, serrors.Wrap("validating config", err)
	}
	if err := log.Setup(*cfg.LogConfig(), log.WithEntriesCounter(a.entries)); err != nil {
		return nil, serrors.Wrap("setting up logging", err)
	}
	env.LogAppStarted(a.Name)
	a.started = true
	return cfg, nil
}

func (a *Application) newSample() *cobra.Command {
	return &cobra.Command{
		Use:     "sample",
		Short:   "Display a sample configuration file",
		Example: fmt.Sprintf("  %[1]s sample > %[1]s.toml", a.Name),
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.NewConfig().Sample(cmd.OutOrStdout(), nil, nil)
		},
	}
}

func (a *Application) errorWriter() io.Writer {
	if a.ErrorWriter != nil {
		return a.ErrorWriter
	}
	return os.Stderr
}
