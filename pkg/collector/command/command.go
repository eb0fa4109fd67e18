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

package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/NVIDIA/hoststat/pkg/defaults"
	"github.com/NVIDIA/hoststat/pkg/errors"
)

// Runner executes external tools and returns their standard output.
type Runner interface {
	// Run executes name with args and returns its standard output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath resolves name to an executable path.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec. Output is forced into the C locale
// so numbers always use '.' as the decimal separator.
type ExecRunner struct {
	// Timeout bounds every command. Zero means defaults.CommandTimeout.
	Timeout time.Duration
}

// NewExecRunner returns an ExecRunner with the given per-command timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// LookPath resolves name with exec.LookPath. A missing or non-executable
// file is reported as NOT_FOUND.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("%s not found", name), err,
			map[string]any{"path": name})
	}
	return path, nil
}

// Run executes the command and returns its standard output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := r.LookPath(name)
	if err != nil {
		return nil, err
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaults.CommandTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	output, err := cmd.Output()
	slog.Debug("command finished",
		slog.String("command", name),
		slog.String("args", strings.Join(args, " ")),
		slog.Duration("duration", time.Since(start)),
		slog.Int("bytes", len(output)))

	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.WrapWithContext(errors.ErrCodeTimeout,
				fmt.Sprintf("%s timed out after %s", name, timeout), err,
				map[string]any{"command": name})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeCommandFailed,
			fmt.Sprintf("failed to execute %s", name), err,
			map[string]any{
				"command": name,
				"args":    args,
				"stderr":  strings.TrimSpace(stderr.String()),
			})
	}

	return output, nil
}

// Require checks that the tool at path exists and is executable. The
// remediation hint is attached to the NOT_FOUND error so the operator
// knows how to fix the environment.
func Require(r Runner, path, remediation string) error {
	if _, err := r.LookPath(path); err != nil {
		return errors.WrapWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("required tool %s is missing: %s", path, remediation), err,
			map[string]any{
				"path":        path,
				"remediation": remediation,
			})
	}
	return nil
}
