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

package network

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/hoststat/pkg/collector/command"
	"github.com/NVIDIA/hoststat/pkg/collector/text"
	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

// Remediation is attached to the error when the counter tool is missing.
const Remediation = "the network counter tool must be installed at this path and be executable"

// Field positions (1-based) on the counter line.
const (
	receivedField = 2
	sentField     = 4
)

// Counters are cumulative bytes since boot.
type Counters struct {
	Received int64
	Sent     int64
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep waits for d and returns early with the context error on
// cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Extractor produces the net group: receive and send rates in bytes per
// second from two counter readings an interval apart.
type Extractor struct {
	Runner command.Runner

	// ToolPath is the absolute path of the network counter tool.
	ToolPath string

	// Interval is the wait between the two readings.
	Interval time.Duration

	// Sleep defaults to network.Sleep.
	Sleep SleepFunc
}

// Group returns measurement.GroupNet.
func (e *Extractor) Group() string {
	return measurement.GroupNet
}

// Extract reads the counters, waits for the interval and reads them again.
func (e *Extractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	if err := command.Require(e.Runner, e.ToolPath, Remediation); err != nil {
		return nil, err
	}

	secs := int64(e.Interval / time.Second)
	if secs < 1 {
		return nil, fmt.Errorf("network interval must be at least one second, got %s", e.Interval)
	}

	start, err := e.read(ctx)
	if err != nil {
		return nil, err
	}

	sleep := e.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	if err := sleep(ctx, e.Interval); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "network sampling interrupted", err)
	}

	end, err := e.read(ctx)
	if err != nil {
		return nil, err
	}

	slog.Debug("sampled network counters",
		slog.Int64("rx_start", start.Received),
		slog.Int64("rx_end", end.Received),
		slog.Int64("tx_start", start.Sent),
		slog.Int64("tx_end", end.Sent))

	return []measurement.Value{
		measurement.Decimal(Rate(start.Received, end.Received, secs), measurement.NetPlaces),
		measurement.Decimal(Rate(start.Sent, end.Sent, secs), measurement.NetPlaces),
	}, nil
}

func (e *Extractor) read(ctx context.Context) (*Counters, error) {
	out, err := e.Runner.Run(ctx, e.ToolPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read network counters: %w", err)
	}
	return ParseCounters(out)
}

// ParseCounters reads the first line of the tool's output, whose 2nd and
// 4th fields are bytes received and sent.
func ParseCounters(out []byte) (*Counters, error) {
	p := text.NewParser("network counters")

	line, err := p.Line(out, 1)
	if err != nil {
		return nil, err
	}

	fields, err := p.Fields(line, sentField)
	if err != nil {
		return nil, err
	}

	c := &Counters{}
	if c.Received, err = text.ParseInt(p.Tool(), fields[receivedField-1]); err != nil {
		return nil, err
	}
	if c.Sent, err = text.ParseInt(p.Tool(), fields[sentField-1]); err != nil {
		return nil, err
	}
	return c, nil
}

// Rate returns the per-second change of a counter over secs seconds.
func Rate(start, end, secs int64) float64 {
	return float64(end-start) / float64(secs)
}
