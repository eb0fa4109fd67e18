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

package process

import (
	"context"
	"log/slog"
	"time"

	"github.com/NVIDIA/hoststat/pkg/collector/command"
	"github.com/NVIDIA/hoststat/pkg/errors"
)

// SourceName identifies the process snapshot source in logs and metrics.
const SourceName = "process"

// Source captures the aggregate monitor report and the process table once
// per run and shares them with the CPU, state, load and aggregate
// extractors.
type Source struct {
	Runner command.Runner
	Window time.Duration

	monitor *Monitor
	table   *Table
}

// NewSource returns a Source sampling the monitor over window.
func NewSource(r command.Runner, window time.Duration) *Source {
	return &Source{Runner: r, Window: window}
}

// Name returns SourceName.
func (s *Source) Name() string {
	return SourceName
}

// Capture runs the monitor and then lists the process table.
func (s *Source) Capture(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := CaptureMonitor(ctx, s.Runner, s.Window)
	if err != nil {
		return err
	}

	t, err := CaptureTable(ctx, s.Runner)
	if err != nil {
		return err
	}

	s.monitor, s.table = m, t

	slog.Debug("captured process snapshot",
		slog.Int64("processes", m.Processes),
		slog.Int64("threads", m.Threads),
		slog.Int("table_rows", t.Len()))
	return nil
}

// Monitor returns the captured monitor report.
func (s *Source) Monitor() (*Monitor, error) {
	if s.monitor == nil {
		return nil, errors.New(errors.ErrCodeInternal, "process snapshot has not been captured")
	}
	return s.monitor, nil
}

// Table returns the captured process table.
func (s *Source) Table() (*Table, error) {
	if s.table == nil {
		return nil, errors.New(errors.ErrCodeInternal, "process snapshot has not been captured")
	}
	return s.table, nil
}
