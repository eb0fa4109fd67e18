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

package collector

import (
	"context"

	"github.com/NVIDIA/hoststat/pkg/measurement"
)

// Source captures operating system state once per run. Several extractors
// may read the same source, so sources are captured before any extractor
// runs.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Capture takes the snapshot.
	Capture(ctx context.Context) error
}

// Extractor produces the values of one record group.
type Extractor interface {
	// Group returns the name of the schema group the extractor fills.
	Group() string

	// Extract returns the group's values in schema order.
	Extract(ctx context.Context) ([]measurement.Value, error)
}

// PlaceholderExtractor fills a group the platform cannot measure with zero
// placeholders.
type PlaceholderExtractor struct {
	Name string
	Size int
}

// Group returns the group name.
func (e *PlaceholderExtractor) Group() string {
	return e.Name
}

// Extract returns Size zero placeholders.
func (e *PlaceholderExtractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vals := make([]measurement.Value, e.Size)
	for i := range vals {
		vals[i] = measurement.Zero()
	}
	return vals, nil
}
