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

package serrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

func TestNewContextIsSorted(t *testing.T) {
	err := serrors.New("population invalid", "tier", "STUB", "count", 3)
	assert.EqualError(t, err, "population invalid {count=3; tier=STUB}")
}

func TestWrap(t *testing.T) {
	base := errors.New("disk full")
	err := serrors.Wrap("writing snapshot", base, "path", "topo.json")
	assert.ErrorIs(t, err, base)
	assert.EqualError(t, err, "writing snapshot {path=topo.json}: disk full")

	var st interface{ StackTrace() serrors.StackTrace }
	assert.True(t, errors.As(err, &st))
	assert.NotEmpty(t, st.StackTrace())
}

func TestJoin(t *testing.T) {
	sentinel := errors.New("id space violated")
	cause := errors.New("duplicate id")

	testCases := map[string]struct {
		err      error
		cause    error
		expected string
		nilErr   bool
	}{
		"sentinel and cause": {
			err:      sentinel,
			cause:    cause,
			expected: "id space violated {as=3}: duplicate id",
		},
		"sentinel only": {
			err:      sentinel,
			expected: "id space violated {as=3}",
		},
		"both nil": {
			nilErr: true,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := serrors.JoinNoStack(tc.err, tc.cause, "as", 3)
			if tc.nilErr {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.expected)
			assert.ErrorIs(t, err, sentinel)
			if tc.cause != nil {
				assert.ErrorIs(t, err, tc.cause)
			}
		})
	}
}

func TestList(t *testing.T) {
	var errs serrors.List
	assert.NoError(t, errs.ToError())

	target := errors.New("asymmetric peering")
	errs = append(errs, serrors.New("first"), serrors.JoinNoStack(target, nil, "as", 1))
	err := errs.ToError()
	assert.EqualError(t, err, "[ first; asymmetric peering {as=1} ]")
	assert.ErrorIs(t, err, target)

	enc := zapcore.NewMapObjectEncoder()
	assert.NoError(t, enc.AddArray("errs", errs))
	assert.Len(t, enc.Fields["errs"], 2)
}
