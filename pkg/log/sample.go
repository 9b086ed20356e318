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

package log

import (
	"io"

	"github.com/ms1450/mini-internet-simulation/private/config"
)

const consoleSample = `# Console logging level (debug|info|error). (default info)
level = "info"

# Console logging format (human|json). (default human)
format = "human"

# Level from which stack traces are added to log entries
# (debug|info|error|none). (default none)
stacktrace_level = "none"

# Omit the caller file and line from log entries. (default false)
disable_caller = false
`

// Sample writes the sample of the logging block to dst.
func (c *Config) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteSample(dst, path, ctx, &c.Console)
}

// ConfigName is the toml key of the logging block.
func (c *Config) ConfigName() string {
	return "log"
}

// Sample writes the sample of the console block to dst.
func (c *ConsoleConfig) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, consoleSample)
}

// ConfigName is the toml key of the console block.
func (c *ConsoleConfig) ConfigName() string {
	return "console"
}
