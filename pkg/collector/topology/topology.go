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

package topology

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

// dies is reported as a constant; the platform exposes no die count.
const dies = 1

// CountFunc returns the number of logical or physical CPUs.
type CountFunc func(ctx context.Context, logical bool) (int, error)

// Extractor produces the topology group: logical CPUs, physical cores and
// dies.
type Extractor struct {
	// Counts defaults to gopsutil's cpu.CountsWithContext.
	Counts CountFunc
}

// Group returns measurement.GroupTopology.
func (e *Extractor) Group() string {
	return measurement.GroupTopology
}

// Extract queries logical and physical CPU counts.
func (e *Extractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	counts := e.Counts
	if counts == nil {
		counts = cpu.CountsWithContext
	}

	logical, err := count(ctx, counts, true)
	if err != nil {
		return nil, err
	}
	physical, err := count(ctx, counts, false)
	if err != nil {
		return nil, err
	}

	return []measurement.Value{
		measurement.Int(int64(logical)),
		measurement.Int(int64(physical)),
		measurement.Int(dies),
	}, nil
}

func count(ctx context.Context, fn CountFunc, logical bool) (int, error) {
	kind := "physical"
	if logical {
		kind = "logical"
	}

	n, err := fn(ctx, logical)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to count %s CPUs", kind), err)
	}
	if n <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidOutput, fmt.Sprintf("%s CPU count is %d", kind, n))
	}
	return n, nil
}
