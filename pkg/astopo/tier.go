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

package astopo

import (
	"strings"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Tier classifies an AS in the provider hierarchy.
type Tier uint8

const (
	// Tier1 ASes form the top of the hierarchy. They never have providers and
	// are peered in a full mesh.
	Tier1 Tier = iota + 1
	// Transit ASes buy transit from Tier1 ASes and sell it to stubs.
	Transit
	// Stub ASes are leaves of the hierarchy.
	Stub
)

// Tiers lists all tiers in id assignment order.
var Tiers = []Tier{Tier1, Transit, Stub}

func (t Tier) String() string {
	switch t {
	case Tier1:
		return "TIER1"
	case Transit:
		return "TRANSIT"
	case Stub:
		return "STUB"
	default:
		return "UNKNOWN"
	}
}

// Label returns the human readable node type used in graph datasets.
func (t Tier) Label() string {
	switch t {
	case Tier1:
		return "Tier 1 AS"
	case Transit:
		return "Transit AS"
	case Stub:
		return "Stub AS"
	default:
		return "Unknown AS"
	}
}

// ParseTier parses the tier name as returned by String. Parsing is case
// insensitive.
func ParseTier(s string) (Tier, error) {
	switch strings.ToUpper(s) {
	case "TIER1":
		return Tier1, nil
	case "TRANSIT":
		return Transit, nil
	case "STUB":
		return Stub, nil
	default:
		return 0, serrors.New("unknown tier", "tier", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if t < Tier1 || t > Stub {
		return nil, serrors.New("invalid tier", "value", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
