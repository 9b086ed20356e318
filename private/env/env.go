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

// Package env contains build information and startup logging shared by the
// command line applications.
package env

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ms1450/mini-internet-simulation/pkg/log"
)

// Build information, set through -ldflags "-X".
var (
	StartupVersion   = "dev"
	StartupBuildDate = "unknown"
)

// VersionInfo returns build version information.
func VersionInfo() string {
	revision := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				revision = s.Value
			}
		}
	}
	return fmt.Sprintf("  %s\n  %s\n  %s\n  %s\n",
		fmt.Sprintf("Version:       %s", StartupVersion),
		fmt.Sprintf("Build date:    %s", StartupBuildDate),
		fmt.Sprintf("Revision:      %s", revision),
		fmt.Sprintf("Go version:    %s", runtime.Version()),
	)
}

// LogAppStarted logs the startup information of the application at info
// level.
func LogAppStarted(name string) {
	log.Info(fmt.Sprintf("=====================> %s started", name),
		"version", StartupVersion,
		"pid", os.Getpid(),
		"cmd_line", strings.Join(os.Args, " "),
	)
}

// LogAppStopped logs the termination of the application.
func LogAppStopped(name string, err error) {
	if err != nil {
		log.Error(fmt.Sprintf("=====================> %s stopped", name), "err", err)
		return
	}
	log.Info(fmt.Sprintf("=====================> %s stopped", name))
}
