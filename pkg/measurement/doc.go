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

// Package measurement defines the fixed-schema record that hoststat appends
// to its log on every run.
//
// # Core Types
//
//   - Value: one scalar field (integer, fixed-precision decimal, or zero placeholder)
//   - Field: name, unit, kind and description of one position in the record
//   - Group: fixed-size run of fields owned by a single extractor
//   - Schema: ordered groups; DefaultSchema has exactly RecordLength fields
//   - Record: complete, ordered values ready to be written
//
// # Building Records
//
// Extractors return their own value slices and the Builder concatenates them
// in schema order, rejecting groups that arrive out of order or with the
// wrong number of values:
//
//	b := measurement.NewBuilder(measurement.DefaultSchema())
//	if err := b.Add(measurement.GroupCPU, cpuValues...); err != nil {
//	    return err
//	}
//	// ... remaining groups
//	rec, err := b.Build()
//	line := rec.CSV()
//
// Positions are a contract with downstream parsers: a field the platform
// cannot measure is emitted as Zero() instead of being dropped.
package measurement
