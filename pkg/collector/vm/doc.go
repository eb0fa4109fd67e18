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

// Package vm captures the virtual memory snapshot and extracts the paging,
// memory and swap groups.
//
// The snapshot is the second row of "vm_stat -c 2 1" together with the
// kernel page size. Columns are located by header name, so a column added
// in a future release does not shift the values read. Counters that
// outgrow their column are printed with a K, M or G suffix and are scaled
// by 1024 per step.
//
// Memory is derived from page counts:
//
//	app     = anonymous - purgeable
//	used    = (app + wired + compressed) * pagesize
//	free    = free * pagesize
//	buffers = purgeable * pagesize
//	cached  = total - free - used
//
// cached is a residual and is reported as is, including negative values.
// Total physical memory is read through gopsutil.
//
// Swap is read from "sysctl vm.swapusage", whose 7th and 10th tokens hold
// used and free megabytes.
package vm
