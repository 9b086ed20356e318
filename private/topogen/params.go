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
	"math/rand"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Range is an inclusive integer range.
type Range struct {
	Min int
	Max int
}

// Validate checks that 0 <= Min <= Max.
func (r Range) Validate() error {
	if r.Min < 0 || r.Min > r.Max {
		return serrors.New("invalid range", "min", r.Min, "max", r.Max)
	}
	return nil
}

// Sample draws a value uniformly from the range.
func (r Range) Sample(rng *rand.Rand) int {
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Population holds the number of ASes per tier.
type Population struct {
	Tier1   int
	Transit int
	Stub    int
}

// Total is the number of ASes in the population.
func (p Population) Total() int {
	return p.Tier1 + p.Transit + p.Stub
}

// Degrees holds the target degree ranges of a tier.
type Degrees struct {
	P2P Range
	P2C Range
}

// DegreeRanges holds the target degree ranges of all tiers. Tier1 ASes
// never sample a peering target, so Tier1.P2P is ignored.
type DegreeRanges struct {
	Tier1   Degrees
	Transit Degrees
	Stub    Degrees
}

// Probabilities are the random choices made during generation.
type Probabilities struct {
	// StubToTier1 widens the provider candidates of a stub with Tier1 ASes.
	StubToTier1 float64
	// StubToTransit widens the peer candidates of a stub with transit ASes.
	StubToTransit float64
	// Same creates an optional exchange point for an anchor AS.
	Same float64
	// Cross selects each candidate member of an optional exchange point.
	Cross float64
}

// Params are the inputs of a generation run.
type Params struct {
	Population    Population
	Degrees       DegreeRanges
	Probabilities Probabilities
	// RequireTier1 rejects populations without Tier1 ASes.
	RequireTier1 bool
	// RequireTransit rejects populations without transit ASes.
	RequireTransit bool
}

// DefaultParams returns the parameters of the reference 50 AS topology.
func DefaultParams() Params {
	return Params{
		Population: Population{Tier1: 4, Transit: 9, Stub: 37},
		Degrees: DegreeRanges{
			Tier1:   Degrees{P2C: Range{Min: 6, Max: 10}},
			Transit: Degrees{P2P: Range{Min: 2, Max: 3}, P2C: Range{Min: 5, Max: 10}},
			Stub:    Degrees{P2P: Range{Min: 0, Max: 1}, P2C: Range{Min: 1, Max: 2}},
		},
		Probabilities: Probabilities{
			StubToTier1:   0.1,
			StubToTransit: 0.1,
			Same:          0.1,
			Cross:         0.05,
		},
	}
}

// Validate checks that the counts are non-negative, the ranges are well
// formed and the probabilities lie within [0, 1].
func (p Params) Validate() error {
	var errs serrors.List
	counts := []struct {
		tier astopo.Tier
		n    int
	}{
		{astopo.Tier1, p.Population.Tier1},
		{astopo.Transit, p.Population.Transit},
		{astopo.Stub, p.Population.Stub},
	}
	for _, c := range counts {
		if c.n < 0 {
			errs = append(errs, serrors.New("negative AS count", "tier", c.tier, "count", c.n))
		}
	}
	ranges := []struct {
		name string
		r    Range
	}{
		{"tier1.p2c", p.Degrees.Tier1.P2C},
		{"transit.p2p", p.Degrees.Transit.P2P},
		{"transit.p2c", p.Degrees.Transit.P2C},
		{"stub.p2p", p.Degrees.Stub.P2P},
		{"stub.p2c", p.Degrees.Stub.P2C},
	}
	for _, r := range ranges {
		if err := r.r.Validate(); err != nil {
			errs = append(errs, serrors.WrapNoStack("degree range", err, "range", r.name))
		}
	}
	probs := []struct {
		name string
		v    float64
	}{
		{"stub_to_tier1", p.Probabilities.StubToTier1},
		{"stub_to_transit", p.Probabilities.StubToTransit},
		{"same", p.Probabilities.Same},
		{"cross", p.Probabilities.Cross},
	}
	for _, pr := range probs {
		if pr.v < 0 || pr.v > 1 {
			errs = append(errs, serrors.New("probability out of range",
				"probability", pr.name, "value", pr.v))
		}
	}
	return errs.ToError()
}
