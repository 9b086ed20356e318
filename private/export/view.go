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

package export

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
)

// view is a read-only projection of a topology with relations sorted by
// identifier and IXP identifiers shifted by the presentation offset.
type view struct {
	ases   []*astopo.AS
	ixps   []*astopo.IXP
	offset int
}

func newView(topo *astopo.Topology, offset int) *view {
	return &view{ases: topo.ASes(), ixps: topo.IXPs(), offset: offset}
}

func (v *view) ixpID(x *astopo.IXP) int {
	return int(x.ID) + v.offset
}

func (v *view) ixpName(x *astopo.IXP) string {
	return "IXP" + strconv.Itoa(v.ixpID(x))
}

func byID(ases []*astopo.AS) []*astopo.AS {
	s := slices.Clone(ases)
	slices.SortFunc(s, func(a, b *astopo.AS) int { return cmp.Compare(a.ID, b.ID) })
	return s
}

func ixpsByID(ixps []*astopo.IXP) []*astopo.IXP {
	s := slices.Clone(ixps)
	slices.SortFunc(s, func(a, b *astopo.IXP) int { return cmp.Compare(a.ID, b.ID) })
	return s
}

// idList renders ids the way the listing format expects: "[1, 2, 3]".
func idList[T any](items []T, id func(T) int) string {
	s := make([]string, 0, len(items))
	for _, it := range items {
		s = append(s, strconv.Itoa(id(it)))
	}
	return "[" + strings.Join(s, ", ") + "]"
}

func asID(a *astopo.AS) int { return int(a.ID) }
