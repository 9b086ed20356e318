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

// Package log is a thin structured logging facade on top of zap.
//
// Log calls take a message and an even number of key/value context items:
//
//	log.Info("Generated topology", "ases", 50, "ixps", 31)
//
// Before Setup is called, all output is discarded.
package log

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ms1450/mini-internet-simulation/pkg/private/serrors"
)

const (
	// DefaultConsoleLevel is the default log level for the console.
	DefaultConsoleLevel = "info"
	// DefaultStacktraceLevel is the default log level above which stack traces are
	// added to log entries.
	DefaultStacktraceLevel = "none"
)

// Level of a log entry.
type Level zapcore.Level

const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

// Logger describes the logger interface.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

// Config is the configuration of the logger.
type Config struct {
	Console ConsoleConfig `toml:"console,omitempty"`
}

// ConsoleConfig is the config for the console logger.
type ConsoleConfig struct {
	// Level of console logging (debug|info|error). Defaults to info.
	Level string `toml:"level,omitempty"`
	// Format of the console logging (human|json). Defaults to human.
	Format string `toml:"format,omitempty"`
	// StacktraceLevel sets from which level stacktraces are included
	// (debug|info|error|none). Defaults to none.
	StacktraceLevel string `toml:"stacktrace_level,omitempty"`
	// DisableCaller suppresses the file:line annotation.
	DisableCaller bool `toml:"disable_caller,omitempty"`
}

// InitDefaults populates unset fields in cfg with their default values.
func (c *ConsoleConfig) InitDefaults() {
	if c.Level == "" {
		c.Level = DefaultConsoleLevel
	}
	if c.Format == "" {
		c.Format = "human"
	}
	if c.StacktraceLevel == "" {
		c.StacktraceLevel = DefaultStacktraceLevel
	}
}

// InitDefaults populates unset fields in cfg with their default values.
func (c *Config) InitDefaults() {
	c.Console.InitDefaults()
}

// Validate checks that the level and format are known.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Console.Level); err != nil {
		return serrors.Wrap("invalid console level", err)
	}
	switch c.Console.Format {
	case "", "human", "json":
	default:
		return serrors.New("unsupported console format", "format", c.Console.Format)
	}
	return nil
}

// Setup configures the root logger. It must be called before any goroutine
// that logs is started.
func Setup(cfg Config, opts ...Option) error {
	cfg.InitDefaults()
	o := applyOptions(opts)
	level, err := parseLevel(cfg.Console.Level)
	if err != nil {
		return serrors.Wrap("parsing console level", err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch cfg.Console.Format {
	case "human":
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return serrors.New("unsupported console format", "format", cfg.Console.Format)
	}
	zapOpts := append(o.zapOptions(), zap.AddCallerSkip(1))
	if !cfg.Console.DisableCaller {
		zapOpts = append(zapOpts, zap.AddCaller())
	}
	if cfg.Console.StacktraceLevel != "none" {
		st, err := parseLevel(cfg.Console.StacktraceLevel)
		if err != nil {
			return serrors.Wrap("parsing stacktrace level", err)
		}
		zapOpts = append(zapOpts, zap.AddStacktrace(st))
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	zap.ReplaceGlobals(zap.New(core, zapOpts...))
	return nil
}

func parseLevel(lvl string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(lvl))); err != nil {
		return l, err
	}
	switch l {
	case zapcore.DebugLevel, zapcore.InfoLevel, zapcore.ErrorLevel:
		return l, nil
	default:
		return l, fmt.Errorf("unsupported level: %s", lvl)
	}
}

// Flush writes the buffered log entries.
func Flush() {
	_ = zap.L().Sync()
}

// HandlePanic catches panics and logs them. Call it deferred at the top of
// every goroutine.
func HandlePanic() {
	if msg := recover(); msg != nil {
		zap.L().Error("Panic", zap.Any("msg", msg), zap.String("stack", string(debug.Stack())))
		Flush()
		panic(msg)
	}
}

// Debug logs at debug level.
func Debug(msg string, ctx ...any) {
	if ce := zap.L().Check(zapcore.DebugLevel, msg); ce != nil {
		ce.Write(convertCtx(ctx)...)
	}
}

// Info logs at info level.
func Info(msg string, ctx ...any) {
	if ce := zap.L().Check(zapcore.InfoLevel, msg); ce != nil {
		ce.Write(convertCtx(ctx)...)
	}
}

// Error logs at error level.
func Error(msg string, ctx ...any) {
	if ce := zap.L().Check(zapcore.ErrorLevel, msg); ce != nil {
		ce.Write(convertCtx(ctx)...)
	}
}

// New creates a logger with the given context.
func New(ctx ...any) Logger {
	return &logger{logger: zap.L().With(convertCtx(ctx)...)}
}

// Root returns the root logger. It's a logger without any context.
func Root() Logger {
	return &logger{logger: zap.L()}
}

// Discard returns a logger that drops every entry.
func Discard() Logger {
	return &logger{logger: zap.NewNop()}
}

// SafeDebug logs to l if l is not nil.
func SafeDebug(l Logger, msg string, ctx ...any) {
	if l != nil {
		l.Debug(msg, ctx...)
	}
}

// SafeInfo logs to l if l is not nil.
func SafeInfo(l Logger, msg string, ctx ...any) {
	if l != nil {
		l.Info(msg, ctx...)
	}
}

type logger struct {
	logger *zap.Logger
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	if ce := l.logger.Check(zapcore.DebugLevel, msg); ce != nil {
		ce.Write(convertCtx(ctx)...)
	}
}

func (l *logger) Info(msg string, ctx ...any) {
	if ce := l.logger.Check(zapcore.InfoLevel, msg); ce != nil {
		ce.Write(convertCtx(ctx)...)
	}
}

func (l *logger) Error(msg string, ctx ...any) {
	if ce := l.logger.Check(zapcore.ErrorLevel, msg); ce != nil {
		ce.Write(convertCtx(ctx)...)
	}
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(zapcore.Level(lvl))
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprint(ctx[i])
		}
		fields = append(fields, zap.Any(key, ctx[i+1]))
	}
	return fields
}
