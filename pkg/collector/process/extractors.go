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

	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

// unsupportedCPUFields is the number of CPU fields (wait, hiq, siq, steal,
// guest) the platform does not report.
const unsupportedCPUFields = 5

// CPUExtractor produces the cpu group: user, sys and idle percentages
// followed by five zero placeholders.
type CPUExtractor struct {
	Source *Source
}

// Group returns measurement.GroupCPU.
func (e *CPUExtractor) Group() string {
	return measurement.GroupCPU
}

// Extract reads the CPU percentages from the monitor report.
func (e *CPUExtractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	m, err := e.Source.Monitor()
	if err != nil {
		return nil, err
	}

	vals := []measurement.Value{
		measurement.Decimal(m.CPUUser, measurement.PercentPlaces),
		measurement.Decimal(m.CPUSys, measurement.PercentPlaces),
		measurement.Decimal(m.CPUIdle, measurement.PercentPlaces),
	}
	for range unsupportedCPUFields {
		vals = append(vals, measurement.Zero())
	}
	return vals, nil
}

// StateExtractor produces the procs group: runnable and blocked process
// counts from the process table and the thread count from the monitor.
type StateExtractor struct {
	Source *Source
}

// Group returns measurement.GroupProcs.
func (e *StateExtractor) Group() string {
	return measurement.GroupProcs
}

// Extract counts process states.
func (e *StateExtractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	t, err := e.Source.Table()
	if err != nil {
		return nil, err
	}
	m, err := e.Source.Monitor()
	if err != nil {
		return nil, err
	}

	return []measurement.Value{
		measurement.Int(t.CountState(StateRunnable)),
		measurement.Int(t.CountState(StateBlocked)),
		measurement.Int(m.Threads),
	}, nil
}

// LoadExtractor produces the load group from the monitor report.
type LoadExtractor struct {
	Source *Source
}

// Group returns measurement.GroupLoad.
func (e *LoadExtractor) Group() string {
	return measurement.GroupLoad
}

// Extract reads the 1, 5 and 15 minute load averages.
func (e *LoadExtractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	m, err := e.Source.Monitor()
	if err != nil {
		return nil, err
	}

	return []measurement.Value{
		measurement.Decimal(m.Load1, measurement.LoadPlaces),
		measurement.Decimal(m.Load5, measurement.LoadPlaces),
		measurement.Decimal(m.Load15, measurement.LoadPlaces),
	}, nil
}

// AggregateExtractor produces the aggregate group: total process count and
// the PID of the busiest process.
type AggregateExtractor struct {
	Source *Source
}

// Group returns measurement.GroupAggregate.
func (e *AggregateExtractor) Group() string {
	return measurement.GroupAggregate
}

// Extract reads the process total and picks the top CPU consumer.
func (e *AggregateExtractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	m, err := e.Source.Monitor()
	if err != nil {
		return nil, err
	}
	t, err := e.Source.Table()
	if err != nil {
		return nil, err
	}

	pid, ok := t.TopCPU()
	if !ok {
		return nil, errors.Unexpected(tableCommand, "process table is empty", "")
	}

	return []measurement.Value{
		measurement.Int(m.Processes),
		measurement.Int(pid),
	}, nil
}
