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

// Package serrors provides errors that carry key/value context. The context is
// rendered into the error string and, when the error is logged, as structured
// zap fields.
//
// Wrap and New attach a stack trace unless the cause already carries one. Join
// associates a (usually sentinel) error with a cause, so that errors.Is matches
// both.
package serrors

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxPair struct {
	Key   string
	Value any
}

// errorInfo is shared by basicError and joinedError.
type errorInfo struct {
	ctx   []ctxPair
	cause error
	stack *stack
}

func (e errorInfo) suffix() string {
	var buf bytes.Buffer
	if len(e.ctx) != 0 {
		buf.WriteString(" ")
		encodeContext(&buf, e.ctx)
	}
	if e.cause != nil {
		fmt.Fprintf(&buf, ": %s", e.cause)
	}
	return buf.String()
}

func (e errorInfo) marshalLogObject(enc zapcore.ObjectEncoder) error {
	if e.cause != nil {
		if m, ok := e.cause.(zapcore.ObjectMarshaler); ok {
			if err := enc.AddObject("cause", m); err != nil {
				return err
			}
		} else {
			enc.AddString("cause", e.cause.Error())
		}
	}
	if e.stack != nil {
		if err := enc.AddArray("stacktrace", e.stack); err != nil {
			return err
		}
	}
	for _, pair := range e.ctx {
		zap.Any(pair.Key, pair.Value).AddTo(enc)
	}
	return nil
}

// StackTrace returns the attached stack trace if there is any.
func (e errorInfo) StackTrace() StackTrace {
	if e.stack == nil {
		return nil
	}
	return e.stack.StackTrace()
}

func mkErrorInfo(cause error, addStack bool, errCtx ...any) errorInfo {
	np := len(errCtx) / 2
	ctx := make([]ctxPair, np)
	for i := 0; i < np; i++ {
		ctx[i] = ctxPair{Key: fmt.Sprint(errCtx[2*i]), Value: errCtx[2*i+1]}
	}
	sort.SliceStable(ctx, func(a, b int) bool {
		return ctx[a].Key < ctx[b].Key
	})
	r := errorInfo{cause: cause, ctx: ctx}
	if addStack && !hasStack(cause) {
		r.stack = callers()
	}
	return r
}

// hasStack reports whether err is, or wraps, an error of this package. Only the
// innermost such error carries the stack trace.
func hasStack(err error) bool {
	if err == nil {
		return false
	}
	var (
		b  basicError
		bp *basicError
		j  joinedError
	)
	return errors.As(err, &b) || errors.As(err, &bp) || errors.As(err, &j)
}

type basicError struct {
	errorInfo
	msg string
}

func (e basicError) Error() string {
	return e.msg + e.errorInfo.suffix()
}

func (e basicError) Unwrap() error {
	return e.cause
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e basicError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.msg)
	return e.errorInfo.marshalLogObject(enc)
}

// New creates an error with the given message and context, plus a stack trace.
// Sentinel errors should be created with errors.New instead.
func New(msg string, errCtx ...any) error {
	return &basicError{
		errorInfo: mkErrorInfo(nil, true, errCtx...),
		msg:       msg,
	}
}

// Wrap returns an error with the given message that wraps cause. errors.Is(err,
// cause) holds for the returned error. A stack trace is attached unless cause
// already carries one.
func Wrap(msg string, cause error, errCtx ...any) error {
	return basicError{
		errorInfo: mkErrorInfo(cause, true, errCtx...),
		msg:       msg,
	}
}

// WrapNoStack is like Wrap but never attaches a stack trace.
func WrapNoStack(msg string, cause error, errCtx ...any) error {
	return basicError{
		errorInfo: mkErrorInfo(cause, false, errCtx...),
		msg:       msg,
	}
}

type joinedError struct {
	errorInfo
	error error
}

func (e joinedError) Error() string {
	return e.error.Error() + e.errorInfo.suffix()
}

func (e joinedError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.error}
	}
	return []error{e.error, e.cause}
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e joinedError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.error.Error())
	return e.errorInfo.marshalLogObject(enc)
}

// Join returns an error that associates err with cause (if not nil) and the
// given context. errors.Is matches both err and cause. Join returns nil if both
// err and cause are nil.
func Join(err, cause error, errCtx ...any) error {
	if err == nil && cause == nil {
		return nil
	}
	if err == nil {
		return WrapNoStack("error", cause, errCtx...)
	}
	return joinedError{
		errorInfo: mkErrorInfo(cause, true, errCtx...),
		error:     err,
	}
}

// JoinNoStack is like Join but never attaches a stack trace.
func JoinNoStack(err, cause error, errCtx ...any) error {
	if err == nil && cause == nil {
		return nil
	}
	if err == nil {
		return WrapNoStack("error", cause, errCtx...)
	}
	return joinedError{
		errorInfo: mkErrorInfo(cause, false, errCtx...),
		error:     err,
	}
}

// List is a slice of errors.
type List []error

// Error implements the error interface.
func (e List) Error() string {
	s := make([]string, 0, len(e))
	for _, err := range e {
		s = append(s, err.Error())
	}
	return fmt.Sprintf("[ %s ]", strings.Join(s, "; "))
}

// ToError returns the list as error, or nil if the list is empty.
func (e List) ToError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Unwrap allows errors.Is and errors.As to inspect all errors in the list.
func (e List) Unwrap() []error {
	return e
}

// MarshalLogArray implements zapcore.ArrayMarshaler.
func (e List) MarshalLogArray(ae zapcore.ArrayEncoder) error {
	for _, err := range e {
		if m, ok := err.(zapcore.ObjectMarshaler); ok {
			if err := ae.AppendObject(m); err != nil {
				return err
			}
		} else {
			ae.AppendString(err.Error())
		}
	}
	return nil
}

func encodeContext(buf io.Writer, pairs []ctxPair) {
	fmt.Fprint(buf, "{")
	for i, p := range pairs {
		fmt.Fprintf(buf, "%s=%v", p.Key, p.Value)
		if i != len(pairs)-1 {
			fmt.Fprint(buf, "; ")
		}
	}
	fmt.Fprint(buf, "}")
}
