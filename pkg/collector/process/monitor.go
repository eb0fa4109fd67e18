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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/hoststat/pkg/collector/command"
	"github.com/NVIDIA/hoststat/pkg/collector/text"
)

const (
	monitorCommand = "top"

	processesPrefix = "Processes:"
	loadPrefix      = "Load Avg:"
	cpuPrefix       = "CPU usage:"
)

// Monitor is the system-wide summary reported by the aggregate monitor over
// its sampling window.
type Monitor struct {
	// CPUUser, CPUSys and CPUIdle are percentages of total CPU time.
	CPUUser float64
	CPUSys  float64
	CPUIdle float64

	// Load1, Load5 and Load15 are the load averages.
	Load1  float64
	Load5  float64
	Load15 float64

	// Processes is the total number of processes.
	Processes int64

	// Threads is the total number of threads.
	Threads int64
}

// monitorArgs returns the top arguments for a window. top prints two
// samples; the first covers the time since boot and is ignored.
func monitorArgs(window time.Duration) []string {
	secs := int64(window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return []string{"-l", "2", "-s", strconv.FormatInt(secs, 10), "-n", "0"}
}

// CaptureMonitor runs the aggregate monitor once and parses its last sample.
func CaptureMonitor(ctx context.Context, r command.Runner, window time.Duration) (*Monitor, error) {
	out, err := r.Run(ctx, monitorCommand, monitorArgs(window)...)
	if err != nil {
		return nil, fmt.Errorf("failed to run aggregate monitor: %w", err)
	}
	return ParseMonitor(out)
}

// ParseMonitor parses top's logging-mode report. When the report holds
// several samples the last one wins.
func ParseMonitor(out []byte) (*Monitor, error) {
	p := text.NewParser(monitorCommand)

	lines, err := p.Lines(out)
	if err != nil {
		return nil, err
	}

	m := &Monitor{}

	procs, err := p.LastWithPrefix(lines, processesPrefix)
	if err != nil {
		return nil, err
	}
	if err := parseProcesses(p, procs, m); err != nil {
		return nil, err
	}

	load, err := p.LastWithPrefix(lines, loadPrefix)
	if err != nil {
		return nil, err
	}
	if err := parseLoad(p, load, m); err != nil {
		return nil, err
	}

	cpu, err := p.LastWithPrefix(lines, cpuPrefix)
	if err != nil {
		return nil, err
	}
	if err := parseCPU(p, cpu, m); err != nil {
		return nil, err
	}

	return m, nil
}

// parseProcesses reads "523 total, 3 running, 520 sleeping, 2468 threads".
func parseProcesses(p *text.Parser, line string, m *Monitor) error {
	var total, threads string
	for _, part := range strings.Split(line, ",") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			continue
		}
		switch fields[1] {
		case "total":
			total = fields[0]
		case "threads":
			threads = fields[0]
		}
	}

	if total == "" || threads == "" {
		return p.Unexpected("process line lacks total or threads", line)
	}

	var err error
	if m.Processes, err = text.ParseInt(p.Tool(), total); err != nil {
		return err
	}
	if m.Threads, err = text.ParseInt(p.Tool(), threads); err != nil {
		return err
	}
	return nil
}

// parseLoad reads "1.79, 2.05, 2.17".
func parseLoad(p *text.Parser, line string, m *Monitor) error {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return p.Unexpected(fmt.Sprintf("expected 3 load averages, got %d", len(parts)), line)
	}

	vals := make([]float64, 3)
	for i, part := range parts {
		v, err := text.ParseFloat(p.Tool(), part)
		if err != nil {
			return err
		}
		vals[i] = v
	}

	m.Load1, m.Load5, m.Load15 = vals[0], vals[1], vals[2]
	return nil
}

// parseCPU reads "5.26% user, 10.52% sys, 84.21% idle".
func parseCPU(p *text.Parser, line string, m *Monitor) error {
	found := map[string]bool{}
	for _, part := range strings.Split(line, ",") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return p.Unexpected("cpu usage entry is not '<pct> <label>'", line)
		}

		v, err := text.ParseFloat(p.Tool(), fields[0])
		if err != nil {
			return err
		}

		switch fields[1] {
		case "user":
			m.CPUUser = v
		case "sys":
			m.CPUSys = v
		case "idle":
			m.CPUIdle = v
		default:
			continue
		}
		found[fields[1]] = true
	}

	if len(found) != 3 {
		return p.Unexpected("cpu usage line lacks user, sys or idle", line)
	}
	return nil
}
