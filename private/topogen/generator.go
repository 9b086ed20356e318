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
	"context"
	"errors"
	"math/rand"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// ErrDegeneratePopulation indicates a population that cannot form a topology.
var ErrDegeneratePopulation = errors.New("degenerate population")

// Report summarizes a generation run.
type Report struct {
	Seed       int64
	Shortfalls []Shortfall
	IXPs       IXPResult
	Edges      astopo.EdgeCounts
}

// Generator runs all generation phases.
type Generator struct {
	Params Params
	// Logger is optional.
	Logger log.Logger
	// Metrics is optional.
	Metrics *Metrics
}

// Generate builds a topology from seed. The context is checked between
// phases.
func (g *Generator) Generate(ctx context.Context, seed int64) (*astopo.Topology, Report, error) {
	report := Report{Seed: seed}
	p := g.Params
	if err := p.Validate(); err != nil {
		return nil, report, serrors.Wrap("invalid parameters", err)
	}
	switch {
	case p.Population.Total() == 0:
		return nil, report, serrors.JoinNoStack(ErrDegeneratePopulation, nil, "ases", 0)
	case p.RequireTier1 && p.Population.Tier1 == 0:
		return nil, report, serrors.JoinNoStack(ErrDegeneratePopulation, nil,
			"missing", astopo.Tier1)
	case p.RequireTransit && p.Population.Transit == 0:
		return nil, report, serrors.JoinNoStack(ErrDegeneratePopulation, nil,
			"missing", astopo.Transit)
	}

	rng := rand.New(rand.NewSource(seed))
	topo := astopo.New()
	builder := PopulationBuilder{Rand: rng, Degrees: p.Degrees}
	if err := builder.Build(topo, p.Population); err != nil {
		return nil, report, err
	}
	log.SafeDebug(g.Logger, "Population built", "tier1", p.Population.Tier1,
		"transit", p.Population.Transit, "stub", p.Population.Stub)

	if err := ctx.Err(); err != nil {
		return nil, report, err
	}
	providers := ProviderConnector{
		Rand:        rng,
		StubToTier1: p.Probabilities.StubToTier1,
		Logger:      g.Logger,
		Metrics:     g.Metrics,
	}
	sf, err := providers.Connect(topo)
	report.Shortfalls = append(report.Shortfalls, sf...)
	if err != nil {
		return nil, report, err
	}

	if err := ctx.Err(); err != nil {
		return nil, report, err
	}
	peers := PeerConnector{
		Rand:          rng,
		StubToTransit: p.Probabilities.StubToTransit,
		Logger:        g.Logger,
		Metrics:       g.Metrics,
	}
	sf, err = peers.Connect(topo)
	report.Shortfalls = append(report.Shortfalls, sf...)
	if err != nil {
		return nil, report, err
	}

	if err := ctx.Err(); err != nil {
		return nil, report, err
	}
	ixps := IXPConnector{
		Rand:    rng,
		Same:    p.Probabilities.Same,
		Cross:   p.Probabilities.Cross,
		Logger:  g.Logger,
		Metrics: g.Metrics,
	}
	if report.IXPs, err = ixps.Connect(topo); err != nil {
		return nil, report, err
	}

	if err := topo.Verify(); err != nil {
		return nil, report, serrors.Wrap("generated topology is inconsistent", err)
	}
	report.Edges = topo.Edges()
	log.SafeInfo(g.Logger, "Topology generated", "seed", seed, "ases", len(topo.ASes()),
		"ixps", len(topo.IXPs()), "p2c", report.Edges.P2C, "p2p", report.Edges.P2P,
		"shortfalls", len(report.Shortfalls))
	return topo, report, nil
}
