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

package sink

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/NVIDIA/hoststat/pkg/defaults"
	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

// Sink persists a completed record.
type Sink interface {
	Write(ctx context.Context, rec *measurement.Record) error
}

// Appender appends one comma-separated line per record to a log file,
// creating the containing directory on first use. It never truncates or
// rotates the file.
type Appender struct {
	fs   afero.Fs
	path string
}

// Option configures an Appender.
type Option func(*Appender)

// WithFs sets the filesystem. Default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(a *Appender) {
		a.fs = fs
	}
}

// NewAppender returns an Appender writing to path.
func NewAppender(path string, opts ...Option) *Appender {
	a := &Appender{
		fs:   afero.NewOsFs(),
		path: path,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Path returns the log file path.
func (a *Appender) Path() string {
	return a.path
}

// Write appends rec as a single line.
func (a *Appender) Write(ctx context.Context, rec *measurement.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec == nil {
		return errors.New(errors.ErrCodeInternal, "record is nil")
	}

	dir := filepath.Dir(a.path)
	if err := a.fs.MkdirAll(dir, defaults.LogDirMode); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to create log directory", err,
			map[string]any{"dir": dir})
	}

	f, err := a.fs.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaults.LogFileMode)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to open log file", err,
			map[string]any{"path": a.path})
	}

	line := rec.CSV() + "\n"
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to append record", err,
			map[string]any{"path": a.path})
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close log file %s: %w", a.path, err)
	}

	slog.Debug("record appended", slog.String("path", a.path), slog.Int("bytes", len(line)))
	return nil
}
