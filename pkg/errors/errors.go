// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"
)

// ErrorCode classifies a failure of a collection run.
type ErrorCode string

const (
	// ErrCodeNotFound means a required external tool is missing.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTimeout means a command or wait ran past its deadline or was interrupted.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal covers local failures such as the record log being unwritable.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeInvalidRequest means the configuration was rejected.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeInvalidOutput means a tool's output did not have the expected shape.
	ErrCodeInvalidOutput ErrorCode = "INVALID_OUTPUT"
	// ErrCodeCommandFailed means a tool could not start or exited non-zero.
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"
)

// StructuredError carries a code, a message, an optional cause and optional
// key/value context describing the failing command or file.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

func build(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context}
}

// New returns an error without a cause.
func New(code ErrorCode, message string) *StructuredError {
	return build(code, message, nil, nil)
}

// NewWithContext returns an error without a cause but with context.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return build(code, message, nil, context)
}

// Wrap returns an error with code wrapping cause.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return build(code, message, cause, nil)
}

// WrapWithContext returns an error with code wrapping cause, with context.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return build(code, message, cause, context)
}

// Unexpected reports tool output that violates its parsing contract. The
// offending text is kept under the "output" context key.
func Unexpected(tool, detail, got string) *StructuredError {
	return NewWithContext(ErrCodeInvalidOutput,
		fmt.Sprintf("unexpected output shape from %s: %s", tool, detail),
		map[string]any{"tool": tool, "output": got})
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the cause for errors.Is and errors.As.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// LogValue renders the error as a slog group with the code, message, cause
// and context keys in sorted order.
func (e *StructuredError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
	}
	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, e.Context[k]))
	}
	return slog.GroupValue(attrs...)
}

// Find returns the outermost StructuredError in err's chain.
func Find(err error) (*StructuredError, bool) {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost StructuredError in err's chain, or
// "" when there is none.
func CodeOf(err error) ErrorCode {
	if se, ok := Find(err); ok {
		return se.Code
	}
	return ""
}

// HasCode reports whether err carries code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
