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

// Package app contains helpers shared by the command line applications.
package app

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/ms1450/mini-internet-simulation/pkg/log"
)

// LogLevelUsage is the usage of the log level flag.
const LogLevelUsage = "Console logging level if not overridden by the configuration " +
	"(debug|info|error)"

// WithSignal derives a child context that subscribes a signal handler for the
// provided signals. The returned context gets canceled if any of the
// subscribed signals is received.
func WithSignal(ctx context.Context, sig ...os.Signal) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	stop := make(chan os.Signal, len(sig))
	signal.Notify(stop, sig...)

	go func() {
		defer log.HandlePanic()
		defer signal.Stop(stop)
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx
}

type codeError struct {
	error
	code int
}

func (e codeError) Unwrap() error {
	return e.error
}

// WithExitCode attaches an exit code to err. A nil err is replaced by an
// error without message.
func WithExitCode(err error, code int) error {
	if err == nil {
		err = errors.New("")
	}
	return codeError{error: err, code: code}
}

// ExitCode returns the exit code attached to err. It is 0 for nil and -1 if
// err has no exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var c codeError
	if errors.As(err, &c) {
		return c.code
	}
	return -1
}
