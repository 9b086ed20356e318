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

package topogen

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/metrics"
)

// Relation is the kind of an edge in the topology.
type Relation string

const (
	P2C Relation = "p2c"
	P2P Relation = "p2p"
	IXP Relation = "ixp"
)

// Metrics are the generation counters. A nil *Metrics disables counting.
type Metrics struct {
	EdgesCreated *prometheus.CounterVec
	Shortfalls   *prometheus.CounterVec
	IXPs         *prometheus.CounterVec
}

// NewMetrics creates and registers the generation counters.
func NewMetrics(opts ...metrics.Option) *Metrics {
	auto := metrics.ApplyOptions(opts...).Auto()
	return &Metrics{
		EdgesCreated: auto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "topogen_edges_created_total",
				Help: "Total number of edges created, by relation kind.",
			},
			[]string{"kind"},
		),
		Shortfalls: auto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "topogen_shortfalls_total",
				Help: "Total number of degree targets lowered to the achieved degree.",
			},
			[]string{"kind", "tier"},
		),
		IXPs: auto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "topogen_ixps_total",
				Help: "Total number of exchange point candidates, by result (kept|discarded).",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) edge(kind Relation) metrics.Counter {
	if m == nil || m.EdgesCreated == nil {
		return nil
	}
	return m.EdgesCreated.WithLabelValues(string(kind))
}

func (m *Metrics) shortfall(kind Relation, tier astopo.Tier) metrics.Counter {
	if m == nil || m.Shortfalls == nil {
		return nil
	}
	return m.Shortfalls.WithLabelValues(string(kind), tier.String())
}

func (m *Metrics) ixp(kept bool) metrics.Counter {
	if m == nil || m.IXPs == nil {
		return nil
	}
	if kept {
		return m.IXPs.WithLabelValues("kept")
	}
	return m.IXPs.WithLabelValues("discarded")
}
