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

// topogen generates multi-tier AS topologies with exchange points and
// exports them as mini-internet configuration files.
package main

import (
	"github.com/spf13/cobra"

	"github.com/ms1450/mini-internet-simulation/private/app/launcher"
	"github.com/ms1450/mini-internet-simulation/topogen/config"
)

func main() {
	newApplication().Run()
}

func newApplication() *launcher.Application {
	return &launcher.Application{
		Name:      "topogen",
		Short:     "Multi-tier AS topology generator",
		EnvPrefix: "TOPOGEN",
		NewConfig: func() launcher.Config { return config.New() },
		Commands: []func(a *launcher.Application) *cobra.Command{
			newGenerate,
			newExport,
			newMetrics,
		},
	}
}

// loadConfig loads the topogen configuration for cmd.
func loadConfig(
	a *launcher.Application,
	cmd *cobra.Command,
	flags launcher.Flags,
) (*config.Config, error) {

	cfg, err := a.LoadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	return cfg.(*config.Config), nil
}
