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

// Package storage provides factories for the application storage backends.
package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
	"github.com/ms1450/mini-internet-simulation/private/storage/snapshot"
	"github.com/ms1450/mini-internet-simulation/private/storage/snapshot/sqlite"
)

// Backend indicates the snapshot backend type.
type Backend string

const (
	// BackendFile stores the snapshot as a JSON or YAML file.
	BackendFile Backend = "file"
	// BackendSqlite stores the snapshot in a SQLite database.
	BackendSqlite Backend = "sqlite"
)

// BackendFromPath returns the backend selected by the file extension.
func BackendFromPath(path string) (Backend, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return BackendSqlite, nil
	}
	if _, ok := snapshot.FormatFromPath(path); ok {
		return BackendFile, nil
	}
	return "", serrors.New("unsupported snapshot extension", "path", path)
}

// NewSnapshotStorage opens the snapshot store at path. The backend is
// selected by the file extension.
func NewSnapshotStorage(ctx context.Context, path string) (snapshot.Store, error) {
	backend, err := BackendFromPath(path)
	if err != nil {
		return nil, err
	}
	log.FromCtx(ctx).Debug("Opening snapshot storage", "backend", backend, "path", path)
	switch backend {
	case BackendSqlite:
		return sqlite.New(ctx, path)
	default:
		return snapshot.NewFileStore(path)
	}
}
