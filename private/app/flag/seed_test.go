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

package flag_test

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ms1450/mini-internet-simulation/private/app/flag"
)

func TestSeed(t *testing.T) {
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	testCases := map[string]struct {
		input     string
		expected  int64
		assertErr assert.ErrorAssertionFunc
	}{
		"decimal": {
			input:     "42",
			expected:  42,
			assertErr: assert.NoError,
		},
		"negative": {
			input:     "-7",
			expected:  -7,
			assertErr: assert.NoError,
		},
		"random": {
			input:     "random",
			expected:  now.UnixNano(),
			assertErr: assert.NoError,
		},
		"garbage": {
			input:     "0x2a",
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			s := flag.Seed{Now: func() time.Time { return now }}
			err := s.Set(tc.input)
			tc.assertErr(t, err)
			assert.Equal(t, tc.expected, s.Value)
		})
	}
}

func TestSeedFlag(t *testing.T) {
	s := flag.Seed{Value: 42}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&s, "seed", "seed")
	assert.Equal(t, "42", fs.Lookup("seed").DefValue)
	require.NoError(t, fs.Parse([]string{"--seed", "1337"}))
	assert.Equal(t, int64(1337), s.Value)
	assert.True(t, fs.Changed("seed"))
}
