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

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

// PagingExtractor produces the paging group: bytes paged in and out.
type PagingExtractor struct {
	Source *Source
}

// Group returns measurement.GroupPaging.
func (e *PagingExtractor) Group() string {
	return measurement.GroupPaging
}

// Extract converts page-ins and page-outs to bytes.
func (e *PagingExtractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	s, err := e.Source.Sample()
	if err != nil {
		return nil, err
	}

	return []measurement.Value{
		measurement.Int(s.Pageins * s.PageSize),
		measurement.Int(s.Pageouts * s.PageSize),
	}, nil
}

// TotalMemoryFunc returns the installed physical memory in bytes.
type TotalMemoryFunc func(ctx context.Context) (int64, error)

// HostTotalMemory reads the physical memory size through gopsutil.
func HostTotalMemory(ctx context.Context) (int64, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, "failed to read total physical memory", err)
	}
	return int64(v.Total), nil
}

// MemoryExtractor produces the memory group in used, buff, cach, free
// order.
type MemoryExtractor struct {
	Source      *Source
	TotalMemory TotalMemoryFunc
}

// Group returns measurement.GroupMemory.
func (e *MemoryExtractor) Group() string {
	return measurement.GroupMemory
}

// Memory is the derived memory breakdown in bytes.
type Memory struct {
	Used    int64
	Buffers int64
	Cached  int64
	Free    int64
}

// Breakdown derives the memory figures from a sample. Cached is the
// residual of total minus free minus used and can be negative when the
// counters move during sampling.
func Breakdown(s *Sample, total int64) Memory {
	app := s.Anonymous - s.Purgeable
	used := (app + s.Wired + s.Compressed) * s.PageSize
	free := s.Free * s.PageSize
	return Memory{
		Used:    used,
		Buffers: s.Purgeable * s.PageSize,
		Cached:  total - free - used,
		Free:    free,
	}
}

// Extract computes the memory breakdown.
func (e *MemoryExtractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	s, err := e.Source.Sample()
	if err != nil {
		return nil, err
	}

	totalFn := e.TotalMemory
	if totalFn == nil {
		totalFn = HostTotalMemory
	}
	total, err := totalFn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total memory: %w", err)
	}

	m := Breakdown(s, total)
	return []measurement.Value{
		measurement.Int(m.Used),
		measurement.Int(m.Buffers),
		measurement.Int(m.Cached),
		measurement.Int(m.Free),
	}, nil
}
