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

package vm

import (
	"context"
	"fmt"
	"strings"

	"github.com/NVIDIA/hoststat/pkg/collector/command"
	"github.com/NVIDIA/hoststat/pkg/collector/text"
)

const vmStatCommand = "vm_stat"

// vm_stat prints the counters since boot first; the second row covers the
// one second interval and is the one kept.
var vmStatArgs = []string{"-c", "2", "1"}

// Column names in the vm_stat header.
const (
	colFree       = "free"
	colActive     = "active"
	colInactive   = "inactive"
	colWired      = "wired"
	colPurgeable  = "prgable"
	colAnonymous  = "anonymous"
	colCompressed = "cmprssed"
	colPageins    = "pageins"
	colPageouts   = "pageout"
)

var requiredColumns = []string{
	colFree, colActive, colInactive, colWired, colPurgeable,
	colAnonymous, colCompressed, colPageins, colPageouts,
}

// Sample is one vm_stat interval row, in pages, plus the page size.
type Sample struct {
	Free       int64
	Active     int64
	Inactive   int64
	Wired      int64
	Purgeable  int64
	Anonymous  int64
	Compressed int64
	Pageins    int64
	Pageouts   int64

	// PageSize is the host page size in bytes.
	PageSize int64
}

// CaptureSample runs vm_stat and parses its second sample.
func CaptureSample(ctx context.Context, r command.Runner, pageSize int64) (*Sample, error) {
	out, err := r.Run(ctx, vmStatCommand, vmStatArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to run vm_stat: %w", err)
	}

	s, err := ParseSample(out)
	if err != nil {
		return nil, err
	}
	s.PageSize = pageSize
	return s, nil
}

// ParseSample locates the column header row and returns the second data
// row below it.
func ParseSample(out []byte) (*Sample, error) {
	p := text.NewParser(vmStatCommand)

	lines, err := p.Lines(out)
	if err != nil {
		return nil, err
	}

	header := -1
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == colFree {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, p.Unexpected("no column header row", string(out))
	}

	columns := strings.Fields(lines[header])
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, p.Unexpected(fmt.Sprintf("column %q missing from header", c), lines[header])
		}
	}

	rows := lines[header+1:]
	if len(rows) < 2 {
		return nil, p.Unexpected(fmt.Sprintf("expected 2 samples, got %d", len(rows)), string(out))
	}

	fields, err := p.Fields(rows[1], len(columns))
	if err != nil {
		return nil, err
	}

	get := func(col string) (int64, error) {
		return text.ParseScaled(p.Tool(), fields[index[col]])
	}

	s := &Sample{}
	targets := []struct {
		col string
		dst *int64
	}{
		{colFree, &s.Free},
		{colActive, &s.Active},
		{colInactive, &s.Inactive},
		{colWired, &s.Wired},
		{colPurgeable, &s.Purgeable},
		{colAnonymous, &s.Anonymous},
		{colCompressed, &s.Compressed},
		{colPageins, &s.Pageins},
		{colPageouts, &s.Pageouts},
	}
	for _, t := range targets {
		v, err := get(t.col)
		if err != nil {
			return nil, err
		}
		*t.dst = v
	}

	return s, nil
}
