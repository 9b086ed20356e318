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

// Package config contains the configuration of the topology generator.
//
// A Config starts out with New, which sets the parameters of the reference
// 50 AS topology. Values read from a file override those defaults, including
// explicit zeros.
package config

import (
	"io"
	"path/filepath"
	"slices"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
	"github.com/ms1450/mini-internet-simulation/private/config"
	"github.com/ms1450/mini-internet-simulation/private/export"
	"github.com/ms1450/mini-internet-simulation/private/topogen"
)

const (
	// DefaultSeed is the seed of the reference topology.
	DefaultSeed = 42
	// DefaultOutputDir is where artifacts are written.
	DefaultOutputDir = "."
	// DefaultSnapshotName is the snapshot file name inside the output
	// directory.
	DefaultSnapshotName = "snapshot.json"
)

// Export formats.
const (
	FormatMiniInternet = export.MiniInternet
	FormatCSV          = export.CSV
	FormatText         = export.Text
)

// Formats lists all export formats.
var Formats = export.Formats

// Keys of the settings that can be overridden through the environment and
// command line flags.
const (
	KeySeed         = "general.seed"
	KeyOutputDir    = "general.output_dir"
	KeySnapshotPath = "snapshot.path"
	KeyIXPOffset    = "export.ixp_offset"
	KeyOverwrite    = "export.overwrite"
	KeyLogLevel     = "log.console.level"
	KeyLogFormat    = "log.console.format"
)

// Config is the topogen configuration.
type Config struct {
	General       General       `toml:"general,omitempty"`
	Population    Population    `toml:"population,omitempty"`
	Degrees       Degrees       `toml:"degrees,omitempty"`
	Probabilities Probabilities `toml:"probabilities,omitempty"`
	Export        Export        `toml:"export,omitempty"`
	Snapshot      Snapshot      `toml:"snapshot,omitempty"`
	Logging       log.Config    `toml:"log,omitempty"`
}

// New returns a config holding the reference parameters.
func New() *Config {
	p := topogen.DefaultParams()
	cfg := &Config{
		General: General{Seed: DefaultSeed},
		Population: Population{
			Tier1:   p.Population.Tier1,
			Transit: p.Population.Transit,
			Stub:    p.Population.Stub,
		},
		Degrees: Degrees{
			Tier1P2C:   fromRange(p.Degrees.Tier1.P2C),
			TransitP2P: fromRange(p.Degrees.Transit.P2P),
			TransitP2C: fromRange(p.Degrees.Transit.P2C),
			StubP2P:    fromRange(p.Degrees.Stub.P2P),
			StubP2C:    fromRange(p.Degrees.Stub.P2C),
		},
		Probabilities: Probabilities{
			StubToTier1:   p.Probabilities.StubToTier1,
			StubToTransit: p.Probabilities.StubToTransit,
			Same:          p.Probabilities.Same,
			Cross:         p.Probabilities.Cross,
		},
		Snapshot: Snapshot{Path: DefaultSnapshotName},
	}
	cfg.InitDefaults()
	return cfg
}

func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.General,
		&cfg.Degrees,
		&cfg.Export,
		&cfg.Logging,
	)
}

func (cfg *Config) Validate() error {
	return config.ValidateAll(
		&cfg.Population,
		&cfg.Degrees,
		&cfg.Probabilities,
		&cfg.Export,
		&cfg.Logging,
	)
}

func (cfg *Config) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, nil,
		&cfg.General,
		&cfg.Population,
		&cfg.Degrees,
		&cfg.Probabilities,
		&cfg.Export,
		&cfg.Snapshot,
		&cfg.Logging,
	)
}

// Params converts the config into generation parameters.
func (cfg *Config) Params() topogen.Params {
	return topogen.Params{
		Population: topogen.Population{
			Tier1:   cfg.Population.Tier1,
			Transit: cfg.Population.Transit,
			Stub:    cfg.Population.Stub,
		},
		Degrees: topogen.DegreeRanges{
			Tier1: topogen.Degrees{P2C: cfg.Degrees.Tier1P2C.Range()},
			Transit: topogen.Degrees{
				P2P: cfg.Degrees.TransitP2P.Range(),
				P2C: cfg.Degrees.TransitP2C.Range(),
			},
			Stub: topogen.Degrees{
				P2P: cfg.Degrees.StubP2P.Range(),
				P2C: cfg.Degrees.StubP2C.Range(),
			},
		},
		Probabilities: topogen.Probabilities{
			StubToTier1:   cfg.Probabilities.StubToTier1,
			StubToTransit: cfg.Probabilities.StubToTransit,
			Same:          cfg.Probabilities.Same,
			Cross:         cfg.Probabilities.Cross,
		},
		RequireTier1:   cfg.Population.RequireTier1,
		RequireTransit: cfg.Population.RequireTransit,
	}
}

// ExportOptions returns the exporter options. Artifacts are written to the
// output directory.
func (cfg *Config) ExportOptions() export.Options {
	return export.Options{
		Dir:       cfg.General.OutputDir,
		IXPOffset: cfg.Export.IXPOffset,
		Overwrite: cfg.Export.Overwrite,
		Formats:   slices.Clone(cfg.Export.Formats),
	}
}

// LogConfig returns the logging section.
func (cfg *Config) LogConfig() *log.Config {
	return &cfg.Logging
}

// Override applies the values that are set in v. Keys are looked up with the
// Key constants.
func (cfg *Config) Override(v *viper.Viper) error {
	var errs serrors.List
	set := func(key string, apply func(any) error) {
		if !v.IsSet(key) {
			return
		}
		if err := apply(v.Get(key)); err != nil {
			errs = append(errs, serrors.Wrap("invalid override", err, "key", key))
		}
	}
	set(KeySeed, func(val any) (err error) {
		cfg.General.Seed, err = cast.ToInt64E(val)
		return err
	})
	set(KeyOutputDir, func(val any) (err error) {
		cfg.General.OutputDir, err = cast.ToStringE(val)
		return err
	})
	set(KeySnapshotPath, func(val any) (err error) {
		cfg.Snapshot.Path, err = cast.ToStringE(val)
		return err
	})
	set(KeyIXPOffset, func(val any) (err error) {
		cfg.Export.IXPOffset, err = cast.ToIntE(val)
		return err
	})
	set(KeyOverwrite, func(val any) (err error) {
		cfg.Export.Overwrite, err = cast.ToBoolE(val)
		return err
	})
	set(KeyLogLevel, func(val any) (err error) {
		cfg.Logging.Console.Level, err = cast.ToStringE(val)
		return err
	})
	set(KeyLogFormat, func(val any) (err error) {
		cfg.Logging.Console.Format, err = cast.ToStringE(val)
		return err
	})
	return errs.ToError()
}

// SnapshotPath returns the snapshot location. A relative snapshot path is
// resolved against the output directory.
func (cfg *Config) SnapshotPath() string {
	p := cfg.Snapshot.Path
	if p == "" {
		p = DefaultSnapshotName
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.General.OutputDir, p)
}

// General holds the run wide settings.
type General struct {
	// Seed of the random source.
	Seed int64 `toml:"seed"`
	// OutputDir is the directory all artifacts are written to.
	OutputDir string `toml:"output_dir,omitempty"`
}

func (cfg *General) InitDefaults() {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
}

func (cfg *General) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, generalSample)
}

func (cfg *General) ConfigName() string {
	return "general"
}

// Population holds the number of ASes per tier.
type Population struct {
	Tier1   int `toml:"tier1"`
	Transit int `toml:"transit"`
	Stub    int `toml:"stub"`
	// RequireTier1 rejects populations without Tier1 ASes.
	RequireTier1 bool `toml:"require_tier1,omitempty"`
	// RequireTransit rejects populations without transit ASes.
	RequireTransit bool `toml:"require_transit,omitempty"`
}

func (cfg *Population) Validate() error {
	if cfg.Tier1 < 0 || cfg.Transit < 0 || cfg.Stub < 0 {
		return serrors.New("negative AS count", "tier1", cfg.Tier1,
			"transit", cfg.Transit, "stub", cfg.Stub)
	}
	return nil
}

func (cfg *Population) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, populationSample)
}

func (cfg *Population) ConfigName() string {
	return "population"
}

// Range is an inclusive [min, max] degree range.
type Range []int

func fromRange(r topogen.Range) Range {
	return Range{r.Min, r.Max}
}

// Range converts r. It must only be called on a validated range.
func (r Range) Range() topogen.Range {
	return topogen.Range{Min: r[0], Max: r[1]}
}

func (r Range) validate(name string) error {
	if len(r) != 2 {
		return serrors.New("range must have two elements", "range", name, "len", len(r))
	}
	if err := r.Range().Validate(); err != nil {
		return serrors.WrapNoStack("invalid degree range", err, "range", name)
	}
	return nil
}

// Degrees holds the target degree ranges per tier. Unset ranges get the
// reference values.
type Degrees struct {
	Tier1P2C   Range `toml:"tier1_p2c,omitempty"`
	TransitP2P Range `toml:"transit_p2p,omitempty"`
	TransitP2C Range `toml:"transit_p2c,omitempty"`
	StubP2P    Range `toml:"stub_p2p,omitempty"`
	StubP2C    Range `toml:"stub_p2c,omitempty"`
}

func (cfg *Degrees) InitDefaults() {
	d := topogen.DefaultParams().Degrees
	for _, r := range []struct {
		dst *Range
		def topogen.Range
	}{
		{&cfg.Tier1P2C, d.Tier1.P2C},
		{&cfg.TransitP2P, d.Transit.P2P},
		{&cfg.TransitP2C, d.Transit.P2C},
		{&cfg.StubP2P, d.Stub.P2P},
		{&cfg.StubP2C, d.Stub.P2C},
	} {
		if *r.dst == nil {
			*r.dst = fromRange(r.def)
		}
	}
}

func (cfg *Degrees) Validate() error {
	var errs serrors.List
	for _, r := range []struct {
		name string
		r    Range
	}{
		{"tier1_p2c", cfg.Tier1P2C},
		{"transit_p2p", cfg.TransitP2P},
		{"transit_p2c", cfg.TransitP2C},
		{"stub_p2p", cfg.StubP2P},
		{"stub_p2c", cfg.StubP2C},
	} {
		if err := r.r.validate(r.name); err != nil {
			errs = append(errs, err)
		}
	}
	return errs.ToError()
}

func (cfg *Degrees) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, degreesSample)
}

func (cfg *Degrees) ConfigName() string {
	return "degrees"
}

// Probabilities holds the random choices made during generation.
type Probabilities struct {
	StubToTier1   float64 `toml:"stub_to_tier1"`
	StubToTransit float64 `toml:"stub_to_transit"`
	Same          float64 `toml:"same"`
	Cross         float64 `toml:"cross"`
}

func (cfg *Probabilities) Validate() error {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"stub_to_tier1", cfg.StubToTier1},
		{"stub_to_transit", cfg.StubToTransit},
		{"same", cfg.Same},
		{"cross", cfg.Cross},
	} {
		if p.v < 0 || p.v > 1 {
			return serrors.New("probability out of range", "probability", p.name, "value", p.v)
		}
	}
	return nil
}

func (cfg *Probabilities) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, probabilitiesSample)
}

func (cfg *Probabilities) ConfigName() string {
	return "probabilities"
}

// Export holds the exporter settings.
type Export struct {
	// IXPOffset is added to every IXP identifier in the artifacts.
	IXPOffset int `toml:"ixp_offset,omitempty"`
	// Overwrite replaces existing artifacts.
	Overwrite bool `toml:"overwrite,omitempty"`
	// Formats selects the artifacts to write.
	Formats []string `toml:"formats,omitempty"`
}

func (cfg *Export) InitDefaults() {
	if len(cfg.Formats) == 0 {
		cfg.Formats = slices.Clone(Formats)
	}
}

func (cfg *Export) Validate() error {
	if cfg.IXPOffset < 0 {
		return serrors.New("negative ixp offset", "ixp_offset", cfg.IXPOffset)
	}
	for _, f := range cfg.Formats {
		if !slices.Contains(Formats, f) {
			return serrors.New("unknown export format", "format", f)
		}
	}
	return nil
}

func (cfg *Export) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, exportSample)
}

func (cfg *Export) ConfigName() string {
	return "export"
}

// Snapshot holds the snapshot settings.
type Snapshot struct {
	config.NoDefaulter
	config.NoValidator

	// Path of the snapshot. The extension selects the format (.json, .yaml,
	// .yml, .db, .sqlite).
	Path string `toml:"path,omitempty"`
}

func (cfg *Snapshot) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, snapshotSample)
}

func (cfg *Snapshot) ConfigName() string {
	return "snapshot"
}
