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

// Package config provides a unified pattern for configuration structs.
//
// Every configuration struct implements Config. There are three parts to a
// configuration: initialization (InitDefaults), validation (Validate) and
// sample generation (Sample).
//
// InitDefaults recursively initializes all unset fields. Fields that should
// not get their default value must be set before calling it.
//
// Sample writes a commented TOML sample. Tests of every config block check
// that the sample decodes and matches the defaults. Sample is allowed to panic
// if writing fails.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Config is the interface that config structs implement.
type Config interface {
	Sampler
	Validator
	Defaulter
}

// Validator defines the validation part of Config.
type Validator interface {
	// Validate recursively checks that all fields contain valid values.
	Validate() error
}

// Defaulter defines the initialization part of Config.
type Defaulter interface {
	// InitDefaults recursively initializes the default values of all
	// unset fields.
	InitDefaults()
}

// Sampler defines the sample generation part of Config.
type Sampler interface {
	// Sample writes a sample config to dst. Sample is allowed to panic if an
	// error occurs.
	Sample(dst io.Writer, path Path, ctx CtxMap)
}

// TableSampler is a Sampler for a named TOML table.
type TableSampler interface {
	Sampler
	// ConfigName returns the name of the table.
	ConfigName() string
}

// Path is the header of a config block possibly consisting of multiple parts.
type Path []string

// Extend creates a copy of the path with s appended.
func (p Path) Extend(s string) Path {
	c := append(Path(nil), p...)
	return append(c, s)
}

// NoValidator implements a Validator that never fails.
type NoValidator struct{}

// Validate always returns nil.
func (NoValidator) Validate() error {
	return nil
}

// NoDefaulter implements a Defaulter that does nothing.
type NoDefaulter struct{}

// InitDefaults is a no-op.
func (NoDefaulter) InitDefaults() {}

// StringSampler implements a TableSampler that writes Text.
type StringSampler struct {
	Text string
	Name string
}

// Sample writes the text to dst.
func (s StringSampler) Sample(dst io.Writer, _ Path, _ CtxMap) {
	WriteString(dst, s.Text)
}

// ConfigName returns the name.
func (s StringSampler) ConfigName() string {
	return s.Name
}

// ValidateAll validates all validators. The first error encountered is returned.
func ValidateAll(validators ...Validator) error {
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return serrors.Wrap("validating config", err, "type", fmt.Sprintf("%T", v))
		}
	}
	return nil
}

// InitAll initializes all defaulters.
func InitAll(defaulters ...Defaulter) {
	for _, v := range defaulters {
		v.InitDefaults()
	}
}

// Decode decodes a raw TOML config. Unknown keys are an error.
func Decode(raw []byte, cfg any) error {
	return toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(cfg)
}

// LoadFile loads the config from file.
func LoadFile(file string, cfg any) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return serrors.Wrap("reading config", err, "file", file)
	}
	if err := Decode(raw, cfg); err != nil {
		return serrors.Wrap("decoding config", err, "file", file)
	}
	return nil
}
