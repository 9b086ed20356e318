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
	"strconv"
)

// IXPID identifies an Internet Exchange Point.
type IXPID uint32

func (id IXPID) String() string {
	return "IXP" + strconv.FormatUint(uint64(id), 10)
}

// IXP is an Internet Exchange Point.
type IXP struct {
	ID      IXPID
	members []*AS
}

// Members returns the member ASes in insertion order.
func (x *IXP) Members() []*AS { return x.members }

func (x *IXP) String() string {
	return x.ID.String()
}
