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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

// NewCompletion creates a command that prints shell completion scripts.
func NewCompletion(pather Pather) *cobra.Command {
	var flags struct {
		shell string
	}
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates shell completion scripts",
		Long: fmt.Sprintf(`Outputs the autocomplete configuration for some shells.

For example, you can add autocompletion for your current bash session using:

    . <( %[1]s completion )

To permanently add bash autocompletion, run:

    %[1]s completion > /etc/bash_completion.d/%[1]s
`, pather.CommandPath()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out := cmd.OutOrStdout()
			switch flags.shell {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return serrors.New("unknown shell", "shell", flags.shell)
			}
		},
	}
	cmd.Flags().StringVar(&flags.shell, "shell", "bash", "Shell type (bash|zsh|fish)")
	return cmd
}
