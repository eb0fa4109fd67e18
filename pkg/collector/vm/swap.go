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
	"math"
	"strings"

	"github.com/NVIDIA/hoststat/pkg/collector/command"
	"github.com/NVIDIA/hoststat/pkg/collector/text"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

const swapCommand = "sysctl"

var swapArgs = []string{"vm.swapusage"}

// Token positions (1-based) in
// "vm.swapusage: total = 2048.00M  used = 1024.50M  free = 1023.50M  (encrypted)".
const (
	swapUsedToken = 7
	swapFreeToken = 10
)

const bytesPerMB = 1024 * 1024

// SwapExtractor produces the swap group: used and free swap in bytes.
type SwapExtractor struct {
	Runner command.Runner
}

// Group returns measurement.GroupSwap.
func (e *SwapExtractor) Group() string {
	return measurement.GroupSwap
}

// Extract queries swap usage.
func (e *SwapExtractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	out, err := e.Runner.Run(ctx, swapCommand, swapArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query swap usage: %w", err)
	}

	used, free, err := ParseSwap(out)
	if err != nil {
		return nil, err
	}

	return []measurement.Value{
		measurement.Int(used),
		measurement.Int(free),
	}, nil
}

// ParseSwap returns used and free swap in bytes.
func ParseSwap(out []byte) (used, free int64, err error) {
	p := text.NewParser(swapCommand)

	line, err := p.Line(out, 1)
	if err != nil {
		return 0, 0, err
	}

	fields, err := p.Fields(line, swapFreeToken)
	if err != nil {
		return 0, 0, err
	}

	if used, err = megabytes(p, fields[swapUsedToken-1]); err != nil {
		return 0, 0, err
	}
	if free, err = megabytes(p, fields[swapFreeToken-1]); err != nil {
		return 0, 0, err
	}
	return used, free, nil
}

// megabytes converts "1024.50M" to bytes.
func megabytes(p *text.Parser, token string) (int64, error) {
	if !strings.HasSuffix(token, "M") {
		return 0, p.Unexpected(fmt.Sprintf("%q is not a megabyte figure", token), token)
	}
	v, err := text.ParseFloat(p.Tool(), strings.TrimSuffix(token, "M"))
	if err != nil {
		return 0, err
	}
	return int64(math.Round(v * bytesPerMB)), nil
}
