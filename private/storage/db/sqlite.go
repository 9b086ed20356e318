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

// Package db contains the sqlite helpers and error classes shared by the
// database backed stores.
//
// The driver is selected at build time: modernc.org/sqlite by default,
// github.com/mattn/go-sqlite3 with the sqlite_mattn build tag.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Sqlite is a sqlite database with a single connection. Stores built on it
// are written by one goroutine at a time.
type Sqlite struct {
	*sql.DB
}

// NewSqlite opens the sqlite database at path, creating the file if needed.
func NewSqlite(path string) (*Sqlite, error) {
	if strings.Contains(path, ":memory:") {
		return nil, serrors.New("use a file backed database", "path", path)
	}
	noFile, ok := strings.CutPrefix(path, "file:")
	if !ok {
		noFile = path
	}
	q := make(url.Values)
	addPragmas(q)
	db, err := sql.Open(driverName(), "file:"+noFile+"?"+q.Encode())
	if err != nil {
		return nil, serrors.Wrap("opening database", err, "path", path)
	}
	// A single connection serializes writers and keeps the transaction
	// pragmas applied to every statement.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, serrors.Wrap("connecting to database", err, "path", path)
	}
	return &Sqlite{DB: db}, nil
}

// Setup applies schema to an empty database and records schemaVersion. An
// existing database must already have schemaVersion.
func (db *Sqlite) Setup(ctx context.Context, schema string, schemaVersion int) error {
	var existing int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version;").Scan(&existing); err != nil {
		return NewReadError("checking schema version", err)
	}
	switch {
	case existing == 0:
		if _, err := db.ExecContext(ctx, schema); err != nil {
			return NewWriteError("applying schema", err)
		}
		_, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
		if err != nil {
			return NewWriteError("writing schema version", err)
		}
		return nil
	case existing != schemaVersion:
		return NewDataError("schema version mismatch", nil,
			"expected", schemaVersion, "actual", existing)
	default:
		return nil
	}
}

// Tx runs f in a transaction. The transaction is committed if f returns nil
// and rolled back otherwise.
func (db *Sqlite) Tx(ctx context.Context, f func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return NewTxError("starting transaction", err)
	}
	if err := f(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return serrors.List{err, NewTxError("rolling back", rbErr)}
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return NewTxError("committing", err)
	}
	return nil
}
