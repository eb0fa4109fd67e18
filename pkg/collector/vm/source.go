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
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hoststat/pkg/collector/command"
	"github.com/NVIDIA/hoststat/pkg/errors"
)

// SourceName identifies the virtual memory snapshot source in logs and
// metrics.
const SourceName = "vm"

// PageSizeFunc returns the host page size in bytes.
type PageSizeFunc func() int64

// HostPageSize queries the kernel page size.
func HostPageSize() int64 {
	return int64(unix.Getpagesize())
}

// Source captures a single vm_stat sample per run and shares it between
// the paging and memory extractors so both see the same counters.
type Source struct {
	Runner   command.Runner
	PageSize PageSizeFunc

	sample *Sample
}

// NewSource returns a Source using the host page size.
func NewSource(r command.Runner) *Source {
	return &Source{Runner: r, PageSize: HostPageSize}
}

// Name returns SourceName.
func (s *Source) Name() string {
	return SourceName
}

// Capture queries the page size and takes the vm_stat sample.
func (s *Source) Capture(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pageSize := s.PageSize
	if pageSize == nil {
		pageSize = HostPageSize
	}

	ps := pageSize()
	if ps <= 0 {
		return errors.New(errors.ErrCodeInternal, "page size must be positive")
	}

	sample, err := CaptureSample(ctx, s.Runner, ps)
	if err != nil {
		return err
	}
	s.sample = sample

	slog.Debug("captured vm snapshot",
		slog.Int64("page_size", ps),
		slog.Int64("free_pages", sample.Free),
		slog.Int64("pageins", sample.Pageins))
	return nil
}

// Sample returns the captured sample.
func (s *Source) Sample() (*Sample, error) {
	if s.sample == nil {
		return nil, errors.New(errors.ErrCodeInternal, "vm snapshot has not been captured")
	}
	return s.sample, nil
}
