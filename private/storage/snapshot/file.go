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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Format is a file encoding of a snapshot.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format selected by the file extension. ok is
// false if the extension does not select a file format.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// Encode writes s to w.
func Encode(w io.Writer, s *Snapshot, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return serrors.New("unsupported snapshot format", "format", f)
	}
}

// Decode reads a snapshot from r. Unknown fields are an error.
func Decode(r io.Reader, f Format) (*Snapshot, error) {
	var s Snapshot
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, serrors.Wrap("decoding json snapshot", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, serrors.Wrap("decoding yaml snapshot", err)
		}
	default:
		return nil, serrors.New("unsupported snapshot format", "format", f)
	}
	return &s, nil
}

// FileStore stores a snapshot in a JSON or YAML file.
type FileStore struct {
	Path   string
	Format Format
}

// NewFileStore creates a store for path. The format is selected by the file
// extension.
func NewFileStore(path string) (*FileStore, error) {
	f, ok := FormatFromPath(path)
	if !ok {
		return nil, serrors.New("unsupported snapshot file extension", "path", path)
	}
	return &FileStore{Path: path, Format: f}, nil
}

// Write encodes s and replaces the file.
func (s *FileStore) Write(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, snap, s.Format); err != nil {
		return serrors.Wrap("encoding snapshot", err, "path", s.Path)
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0o644); err != nil {
		return serrors.Wrap("writing snapshot", err, "path", s.Path)
	}
	return nil
}

// Read decodes the file.
func (s *FileStore) Read(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, serrors.Wrap("opening snapshot", err, "path", s.Path)
	}
	defer f.Close()
	snap, err := Decode(f, s.Format)
	if err != nil {
		return nil, serrors.Wrap("reading snapshot", err, "path", s.Path)
	}
	return snap, nil
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}
