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

// Package flag contains pflag values used by the command line applications.
package flag

import (
	"strconv"
	"time"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// SeedRandom is the flag value that picks a seed from the current time.
const SeedRandom = "random"

// Seed implements pflag.Value.
//
// The flag value is either a decimal integer or "random". A random seed is
// derived from Now, which defaults to time.Now. The chosen seed is reported
// in the snapshot, so a random run can be repeated.
type Seed struct {
	// Value is the parsed seed.
	Value int64
	// Now is the clock used for random seeds.
	Now func() time.Time
}

func (s *Seed) Set(input string) error {
	if input == SeedRandom {
		now := s.Now
		if now == nil {
			now = time.Now
		}
		s.Value = now().UnixNano()
		return nil
	}
	v, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return serrors.New("seed must be an integer or "+SeedRandom, "input", input)
	}
	s.Value = v
	return nil
}

func (s *Seed) UnmarshalText(b []byte) error {
	return s.Set(string(b))
}

func (s *Seed) Type() string {
	return "seed"
}

func (s *Seed) String() string {
	return strconv.FormatInt(s.Value, 10)
}
