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

package db_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ms1450/mini-internet-simulation/private/storage/db"
)

const testSchema = `CREATE TABLE kv (k TEXT PRIMARY KEY, v INTEGER NOT NULL);`

func TestSetup(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	d, err := db.NewSqlite(path)
	require.NoError(t, err)
	require.NoError(t, d.Setup(ctx, testSchema, 1))
	// Applying the same version again is a no-op.
	require.NoError(t, d.Setup(ctx, testSchema, 1))
	require.NoError(t, d.Close())

	d, err = db.NewSqlite(path)
	require.NoError(t, err)
	defer d.Close()
	err = d.Setup(ctx, testSchema, 2)
	assert.ErrorIs(t, err, db.ErrDataInvalid)
}

func TestTx(t *testing.T) {
	ctx := context.Background()
	d, err := db.NewSqlite(filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, d.Setup(ctx, testSchema, 1))

	boom := errors.New("boom")
	err = d.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO kv (k, v) VALUES ('a', 1)`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = d.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO kv (k, v) VALUES ('b', 2)`)
		return err
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, d.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestNewSqliteRejectsMemory(t *testing.T) {
	_, err := db.NewSqlite(":memory:")
	assert.Error(t, err)
}
