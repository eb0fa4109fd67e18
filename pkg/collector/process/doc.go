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

// Package process captures the process and load snapshot and extracts the
// CPU, process state, load average and aggregate process groups from it.
//
// Two tools are run once per collection:
//
//	top -l 2 -s <window> -n 0     aggregate monitor (CPU, load, totals)
//	ps -A -o pid=,pcpu=,state=    process table (per-process CPU and state)
//
// top reports two samples in logging mode; the first one covers the time
// since boot, so only the last Processes, Load Avg and CPU usage lines are
// read. Source holds both results and the extractors read from it:
//
//	src := process.NewSource(runner, time.Second)
//	if err := src.Capture(ctx); err != nil {
//	    return err
//	}
//	cpu, err := (&process.CPUExtractor{Source: src}).Extract(ctx)
//
// Process states are matched by substring: a state such as "R+" or "Us"
// counts towards runnable or blocked respectively. The busiest process is
// chosen by CPU percentage with ties going to the lowest PID.
package process
