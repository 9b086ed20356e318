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
	"errors"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

var (
	// ErrInvalidEdge indicates an edge that would break the relation invariants.
	ErrInvalidEdge = errors.New("invalid edge")
	// ErrInvalidID indicates an identifier that is not larger than all
	// previously added identifiers of its kind.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrInvalidIXP indicates an exchange point with fewer than two distinct
	// members.
	ErrInvalidIXP = errors.New("invalid exchange point")
	// ErrInvariant indicates a violated topology invariant found by Verify.
	ErrInvariant = errors.New("topology invariant violated")
)

func newEdgeError(reason string, a, b *AS) error {
	return serrors.JoinNoStack(ErrInvalidEdge, nil, "reason", reason, "a", a.ID, "b", b.ID)
}
