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

// Package disk extracts disk read and write throughput from an external
// interval sampler.
//
// The sampler is invoked as "<sampler> <interval-seconds> 1" and must print
// a header line followed by a data line whose 8th and 11th fields are the
// KB read and written during the interval. Rates are reported in bytes per
// second with three decimals.
//
// The sampler traces block I/O and therefore needs root privileges and
// DTrace. Neither is checked directly; a missing sampler aborts the run
// with a NOT_FOUND error that names the expected path.
//
// Samplers that only report combined throughput cannot provide separate
// read and write figures and are not supported.
package disk
