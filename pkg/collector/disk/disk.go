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

package disk

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/NVIDIA/hoststat/pkg/collector/command"
	"github.com/NVIDIA/hoststat/pkg/collector/text"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

// Remediation is attached to the error when the sampler is missing.
const Remediation = "the disk sampler must be installed at this path; it runs with root privileges and needs DTrace enabled"

// Field positions (1-based) on the sampler's data line.
const (
	dataLine       = 2
	readKBField    = 8
	writtenKBField = 11
)

// Extractor produces the disk group: read and write throughput in bytes
// per second over the sampling interval.
type Extractor struct {
	Runner command.Runner

	// SamplerPath is the absolute path of the disk sampler.
	SamplerPath string

	// Interval is the sampling interval passed to the sampler.
	Interval time.Duration
}

// Group returns measurement.GroupDisk.
func (e *Extractor) Group() string {
	return measurement.GroupDisk
}

// Extract runs "<sampler> <interval> 1" and converts the KB totals of the
// interval to per-second rates. The sampler blocks for the interval.
func (e *Extractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	if err := command.Require(e.Runner, e.SamplerPath, Remediation); err != nil {
		return nil, err
	}

	secs := int64(e.Interval / time.Second)
	if secs < 1 {
		return nil, fmt.Errorf("disk interval must be at least one second, got %s", e.Interval)
	}

	slog.Debug("sampling disk activity",
		slog.String("sampler", e.SamplerPath),
		slog.Int64("interval_seconds", secs))

	out, err := e.Runner.Run(ctx, e.SamplerPath, strconv.FormatInt(secs, 10), "1")
	if err != nil {
		return nil, fmt.Errorf("failed to run disk sampler: %w", err)
	}

	readKB, writtenKB, err := ParseSample(out)
	if err != nil {
		return nil, err
	}

	return []measurement.Value{
		measurement.Decimal(Rate(readKB, secs), measurement.DiskPlaces),
		measurement.Decimal(Rate(writtenKB, secs), measurement.DiskPlaces),
	}, nil
}

// ParseSample returns the KB read and written from the sampler's literal
// second output line, whose 8th and 11th fields carry them. Blank lines
// count toward the line number.
func ParseSample(out []byte) (readKB, writtenKB float64, err error) {
	p := text.NewParser("disk sampler", text.WithKeepBlank(true))

	line, err := p.Line(out, dataLine)
	if err != nil {
		return 0, 0, err
	}

	fields, err := p.Fields(line, writtenKBField)
	if err != nil {
		return 0, 0, err
	}

	if readKB, err = text.ParseFloat(p.Tool(), fields[readKBField-1]); err != nil {
		return 0, 0, err
	}
	if writtenKB, err = text.ParseFloat(p.Tool(), fields[writtenKBField-1]); err != nil {
		return 0, 0, err
	}
	return readKB, writtenKB, nil
}

// Rate converts a KB total over secs seconds to bytes per second.
func Rate(kb float64, secs int64) float64 {
	return kb * 1024 / float64(secs)
}
