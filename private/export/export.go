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

// Package export writes a generated topology as emulator configuration files
// and graph datasets.
//
// Three formats are supported. The mini-internet format consists of the AS and
// IXP configuration descriptors, the AS level link lists and the router
// fixtures. The text format is a human-readable listing of every AS and IXP.
// The csv format contains a node and a link table for graph tooling.
//
// Relations are always written in ascending identifier order, so exporting a
// topology and exporting its snapshot produce identical files.
package export

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ms1450/mini-internet-simulation/pkg/astopo"
	"github.com/ms1450/mini-internet-simulation/pkg/log"
	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Export formats.
const (
	MiniInternet = "miniinternet"
	CSV          = "csv"
	Text         = "text"
)

// Formats lists all export formats.
var Formats = []string{MiniInternet, CSV, Text}

// Exporter writes a topology.
type Exporter interface {
	Export(ctx context.Context, topo *astopo.Topology) (Result, error)
}

// Options configure a Writer.
type Options struct {
	// Dir is the output directory. It is created if it does not exist.
	Dir string
	// IXPOffset is added to every IXP identifier in the artifacts.
	IXPOffset int
	// Overwrite replaces existing files. Otherwise they are left untouched.
	Overwrite bool
	// Formats selects the artifacts. Empty means all formats.
	Formats []string
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.IXPOffset < 0 {
		return serrors.New("negative ixp offset", "offset", o.IXPOffset)
	}
	for _, f := range o.Formats {
		if !slices.Contains(Formats, f) {
			return serrors.New("unknown export format", "format", f)
		}
	}
	return nil
}

func (o Options) enabled(format string) bool {
	return len(o.Formats) == 0 || slices.Contains(o.Formats, format)
}

// Result lists the files handled by an export, by name relative to the
// output directory.
type Result struct {
	Written []string
	Skipped []string
}

// Writer is the file system Exporter.
type Writer struct {
	Options
	Logger log.Logger
}

// NewWriter creates a writer with the given options.
func NewWriter(opts Options, logger log.Logger) *Writer {
	return &Writer{Options: opts, Logger: logger}
}

// artifact is a single output file.
type artifact struct {
	name   string
	render func(buf *bytes.Buffer) error
}

// Export renders all enabled artifacts of topo and writes them concurrently.
// Rendering completes before the first file is written, so an address plan
// violation leaves the output directory untouched.
func (w *Writer) Export(ctx context.Context, topo *astopo.Topology) (Result, error) {
	if err := w.Validate(); err != nil {
		return Result{}, err
	}
	v := newView(topo, w.IXPOffset)
	var artifacts []artifact
	if w.enabled(MiniInternet) {
		if err := v.checkAddressPlan(); err != nil {
			return Result{}, err
		}
		artifacts = append(artifacts, v.miniInternet()...)
	}
	if w.enabled(Text) {
		artifacts = append(artifacts, v.text()...)
	}
	if w.enabled(CSV) {
		artifacts = append(artifacts, v.tables()...)
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return Result{}, serrors.Wrap("creating output directory", err, "dir", w.Dir)
	}

	var (
		mu  sync.Mutex
		res Result
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, a := range artifacts {
		g.Go(func() error {
			defer log.HandlePanic()
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := a.render(&buf); err != nil {
				return serrors.Wrap("rendering artifact", err, "file", a.name)
			}
			written, err := w.write(a.name, buf.Bytes())
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if written {
				res.Written = append(res.Written, a.name)
			} else {
				res.Skipped = append(res.Skipped, a.name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	slices.Sort(res.Written)
	slices.Sort(res.Skipped)
	log.SafeInfo(w.Logger, "Exported topology", "dir", w.Dir,
		"written", len(res.Written), "skipped", len(res.Skipped))
	return res, nil
}

// write stores data in the named file. It reports false if the file exists
// and the writer must not overwrite it.
func (w *Writer) write(name string, data []byte) (bool, error) {
	path := filepath.Join(w.Dir, name)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !w.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		log.SafeDebug(w.Logger, "Keeping existing file", "file", path)
		return false, nil
	}
	if err != nil {
		return false, serrors.Wrap("opening artifact", err, "file", path)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return false, serrors.Wrap("writing artifact", err, "file", path)
	}
	if err := f.Close(); err != nil {
		return false, serrors.Wrap("closing artifact", err, "file", path)
	}
	return true, nil
}
