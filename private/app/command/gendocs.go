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

package command

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// Cobra renders command titles as level two headings. Every page gets its
// command as the only top level heading instead.
var headers = []struct {
	Search  *regexp.Regexp
	Replace string
}{
	{Search: regexp.MustCompile("(?m)^## "), Replace: "# "},
	{Search: regexp.MustCompile("(?m)^### "), Replace: "## "},
	{Search: regexp.MustCompile("(?m)^#### "), Replace: "### "},
}

// NewGendocs creates a hidden command that writes one markdown page per
// command into a directory.
func NewGendocs(pather Pather) *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "gendocs <directory>",
		Short:   "Generate documentation",
		Example: "  " + pather.CommandPath() + " gendocs doc/command",
		Args:    cobra.ExactArgs(1),
		Hidden:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Root().DisableAutoGenTag = true

			directory := args[0]
			if err := os.MkdirAll(directory, 0o755); err != nil {
				return serrors.Wrap("creating directory", err, "dir", directory)
			}
			if err := genMarkdownTree(cmd.Root(), directory); err != nil {
				return serrors.Wrap("generating documentation", err)
			}
			return nil
		},
	}
	return cmd
}

func genMarkdownTree(cmd *cobra.Command, dir string) error {
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		if err := genMarkdownTree(c, dir); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := doc.GenMarkdownCustom(cmd, &buf, linkHandler); err != nil {
		return err
	}
	raw := buf.Bytes()
	for _, h := range headers {
		raw = h.Search.ReplaceAll(raw, []byte(h.Replace))
	}
	return os.WriteFile(filepath.Join(dir, pageName(cmd.CommandPath())), raw, 0o644)
}

func pageName(commandPath string) string {
	return strings.ReplaceAll(commandPath, " ", "_") + ".md"
}

// linkHandler keeps the links of the SEE ALSO section relative to the
// documentation directory.
func linkHandler(name string) string {
	return name
}
