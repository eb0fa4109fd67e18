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
	"sort"

	"github.com/NVIDIA/hoststat/pkg/collector/command"
	"github.com/NVIDIA/hoststat/pkg/collector/text"
)

const tableCommand = "ps"

var tableArgs = []string{"-A", "-o", "pid=,pcpu=,state="}

// Entry is one row of the process table.
type Entry struct {
	PID   int64
	CPU   float64
	State string
}

// Table is a point-in-time process list. It is not modified after capture.
type Table struct {
	entries []Entry
}

// NewTable returns a Table holding a copy of entries.
func NewTable(entries []Entry) *Table {
	return &Table{entries: append([]Entry(nil), entries...)}
}

// Len returns the number of processes.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the rows.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// CaptureTable runs ps once and parses the process table.
func CaptureTable(ctx context.Context, r command.Runner) (*Table, error) {
	out, err := r.Run(ctx, tableCommand, tableArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	return ParseTable(out)
}

// ParseTable parses "pid pcpu state" rows. Every row must have exactly
// three fields.
func ParseTable(out []byte) (*Table, error) {
	p := text.NewParser(tableCommand)

	lines, err := p.Lines(out)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		fields, err := p.Fields(line, 3)
		if err != nil {
			return nil, err
		}
		if len(fields) != 3 {
			return nil, p.Unexpected(fmt.Sprintf("expected 3 fields, got %d", len(fields)), line)
		}

		pid, err := text.ParseInt(p.Tool(), fields[0])
		if err != nil {
			return nil, err
		}
		cpu, err := text.ParseFloat(p.Tool(), fields[1])
		if err != nil {
			return nil, err
		}

		entries = append(entries, Entry{PID: pid, CPU: cpu, State: fields[2]})
	}

	return &Table{entries: entries}, nil
}

// CountState returns the number of processes whose state contains flag
// anywhere in the state string. "R+" and "Rs" both count as runnable.
func (t *Table) CountState(flag string) int64 {
	var n int64
	for _, e := range t.entries {
		if containsFlag(e.State, flag) {
			n++
		}
	}
	return n
}

// TopCPU returns the PID using the most CPU. Equal CPU values resolve to
// the lowest PID. ok is false for an empty table.
func (t *Table) TopCPU() (pid int64, ok bool) {
	if len(t.entries) == 0 {
		return 0, false
	}

	sorted := t.Entries()
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CPU != sorted[j].CPU {
			return sorted[i].CPU > sorted[j].CPU
		}
		return sorted[i].PID < sorted[j].PID
	})

	return sorted[0].PID, true
}
