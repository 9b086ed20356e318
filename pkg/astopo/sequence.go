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

// Sequence hands out strictly increasing identifiers starting at 1. An
// identifier that was handed out is never returned again, even if the entity it
// was meant for is discarded.
type Sequence[T ~uint32] struct {
	last T
}

// Next returns the next identifier.
func (s *Sequence[T]) Next() T {
	s.last++
	return s.last
}

// Last returns the last identifier handed out, or 0 if none was.
func (s *Sequence[T]) Last() T {
	return s.last
}
