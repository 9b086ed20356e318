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

// Package metrics contains the counter abstraction used across the code base
// and a small factory for registering Prometheus collectors.
//
// Code that increments counters should depend on the Counter interface only,
// so tests can pass the fakes from this package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counter describes a metric that accumulates values monotonically.
// prometheus.Counter implements it.
type Counter interface {
	Add(delta float64)
}

// CounterAdd increases the passed in counter by the amount specified.
// This is a no-op if c is nil.
func CounterAdd(c Counter, delta float64) {
	if c != nil {
		c.Add(delta)
	}
}

// CounterInc increases the passed in counter by 1.
// This is a no-op if c is nil.
func CounterInc(c Counter) {
	CounterAdd(c, 1)
}

// Option configures the Factory.
type Option func(*Options)

// Options configures the metrics Factory, construct it using the ApplyOptions
// function.
type Options struct {
	registry prometheus.Registerer
}

func (o Options) registerer() prometheus.Registerer {
	if o.registry != nil {
		return o.registry
	}
	return prometheus.DefaultRegisterer
}

// WithRegistry registers all collectors with registry instead of the default
// registerer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(o *Options) {
		o.registry = registry
	}
}

// ApplyOptions applies the options in order.
func ApplyOptions(options ...Option) Options {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}
	return opts
}

// Auto creates a Factory that registers with the configured registry.
func (o Options) Auto() Factory {
	return Factory{opts: o}
}

// Factory registers collectors on creation.
type Factory struct {
	opts Options
}

// NewCounterVec creates and registers a counter vector.
func (f Factory) NewCounterVec(
	opts prometheus.CounterOpts,
	labelNames []string,
) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labelNames)
	f.opts.registerer().MustRegister(c)
	return c
}

// NewGauge creates and registers a gauge.
func (f Factory) NewGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	f.opts.registerer().MustRegister(g)
	return g
}
