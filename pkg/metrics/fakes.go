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

package metrics

import (
	"sync"
)

// TestCounter implements a counter for use in tests.
type TestCounter struct {
	mtx sync.Mutex
	v   float64
}

// NewTestCounter creates a new counter for use in tests.
func NewTestCounter() *TestCounter {
	return &TestCounter{}
}

// Add increases the internal value of the counter by the specified delta.
func (c *TestCounter) Add(delta float64) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if delta < 0 {
		panic("counter increment value is < 0")
	}
	c.v += delta
}

// CounterValue extracts the value out of a TestCounter. If the argument is not a
// *TestCounter, CounterValue will panic.
func CounterValue(c Counter) float64 {
	tc := c.(*TestCounter)
	tc.mtx.Lock()
	defer tc.mtx.Unlock()
	return tc.v
}
