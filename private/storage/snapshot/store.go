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

package snapshot

import (
	"context"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Store persists a single snapshot.
type Store interface {
	io.Closer
	// Write replaces the stored snapshot.
	Write(ctx context.Context, s *Snapshot) error
	// Read returns the stored snapshot.
	Read(ctx context.Context) (*Snapshot, error)
}

// Save writes the snapshot of topo to store. It then reads the snapshot back
// and compares it with what was written. A difference is reported as
// ErrRoundTrip.
func Save(ctx context.Context, store Store, topo *astopo.Topology, seed int64) error {
	s := New(topo, seed)
	if err := store.Write(ctx, s); err != nil {
		return serrors.Wrap("writing snapshot", err)
	}
	back, err := store.Read(ctx)
	if err != nil {
		return serrors.Wrap("reading back snapshot", err)
	}
	if diff := cmp.Diff(s, back, cmpopts.EquateEmpty()); diff != "" {
		return serrors.JoinNoStack(ErrRoundTrip, nil, "diff", diff)
	}
	restored, err := back.Topology()
	if err != nil {
		return serrors.JoinNoStack(ErrRoundTrip, err)
	}
	if diff := cmp.Diff(s, New(restored, seed), cmpopts.EquateEmpty()); diff != "" {
		return serrors.JoinNoStack(ErrRoundTrip, nil, "diff", diff)
	}
	return nil
}

// Load reads the snapshot from store and rebuilds its topology.
func Load(ctx context.Context, store Store) (*astopo.Topology, *Snapshot, error) {
	s, err := store.Read(ctx)
	if err != nil {
		return nil, nil, serrors.Wrap("reading snapshot", err)
	}
	topo, err := s.Topology()
	if err != nil {
		return nil, nil, err
	}
	return topo, s, nil
}
