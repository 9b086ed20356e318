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

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ms1450/mini-internet-simulation/private/storage/db"
	"github.com/ms1450/mini-internet-simulation/private/storage/snapshot"
	"github.com/ms1450/mini-internet-simulation/private/storage/snapshot/sqlite"
	"github.com/ms1450/mini-internet-simulation/private/topogen"
)

func TestBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.db")

	g := topogen.Generator{Params: topogen.DefaultParams()}
	topo, _, err := g.Generate(ctx, 42)
	require.NoError(t, err)

	b, err := sqlite.New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, snapshot.Save(ctx, b, topo, 42))
	// Overwriting keeps a single snapshot.
	require.NoError(t, snapshot.Save(ctx, b, topo, 42))
	require.NoError(t, b.Close())

	b, err = sqlite.New(ctx, path)
	require.NoError(t, err)
	defer b.Close()
	restored, s, err := snapshot.Load(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, snapshot.New(topo, 42), snapshot.New(restored, 42))
}

func TestBackendEmpty(t *testing.T) {
	ctx := context.Background()
	b, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer b.Close()
	_, err = b.Read(ctx)
	assert.ErrorIs(t, err, db.ErrReadFailed)
}
