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
	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/metrics"
)

// Shortfall records a degree target that could not be met. The target of the
// AS has been lowered to Achieved.
type Shortfall struct {
	Relation Relation
	AS       astopo.ASID
	Tier     astopo.Tier
	Target   int
	Achieved int
}

// clampP2C lowers the P2C target of a to its achieved degree.
func clampP2C(a *astopo.AS, logger log.Logger, m *Metrics) Shortfall {
	s := Shortfall{
		Relation: P2C,
		AS:       a.ID,
		Tier:     a.Tier,
		Target:   a.P2CTarget,
		Achieved: a.P2CDegree(),
	}
	a.P2CTarget = s.Achieved
	s.record(logger, m)
	return s
}

// clampP2P lowers the P2P target of a to its achieved degree.
func clampP2P(a *astopo.AS, logger log.Logger, m *Metrics) Shortfall {
	s := Shortfall{
		Relation: P2P,
		AS:       a.ID,
		Tier:     a.Tier,
		Target:   a.P2PTarget,
		Achieved: a.PeerDegree(),
	}
	a.P2PTarget = s.Achieved
	s.record(logger, m)
	return s
}

func (s Shortfall) record(logger log.Logger, m *Metrics) {
	log.SafeDebug(logger, "Degree target lowered", "kind", s.Relation, "as", s.AS,
		"tier", s.Tier, "target", s.Target, "achieved", s.Achieved)
	metrics.CounterInc(m.shortfall(s.Relation, s.Tier))
}

func filter(ases []*astopo.AS, keep func(*astopo.AS) bool) []*astopo.AS {
	var r []*astopo.AS
	for _, a := range ases {
		if keep(a) {
			r = append(r, a)
		}
	}
	return r
}
