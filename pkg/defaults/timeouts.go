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

package defaults

import (
	"os"
	"time"
)

// Sampling intervals for the blocking waits of a single run.
const (
	// MonitorWindow is the sampling window of the aggregate system monitor.
	MonitorWindow = 1 * time.Second

	// DiskInterval is the interval the disk sampler measures over.
	DiskInterval = 5 * time.Second

	// NetInterval is the sleep between the two network counter readings.
	NetInterval = 5 * time.Second
)

// Command timeouts for external tool invocations.
const (
	// CommandTimeout bounds a single external command, including its own
	// sampling window. It must stay above the longest interval.
	CommandTimeout = 30 * time.Second

	// RunTimeout bounds a complete collection run. Runs are scheduled once a
	// minute, so anything longer would overlap the next invocation.
	RunTimeout = 55 * time.Second
)

// Filesystem locations and names.
const (
	// BaseDir is the base working directory of the collector.
	BaseDir = "/usr/local/hoststat"

	// LogFileName is the name of the record log inside the log directory.
	LogFileName = "hoststat.log"

	// DiskSamplerName is the executable name of the disk I/O sampler.
	DiskSamplerName = "iosample"

	// NetCounterName is the executable name of the network counter tool.
	NetCounterName = "netcounters"
)

// File modes used by the record sink.
const (
	// LogDirMode is the mode of a log directory created by the sink.
	LogDirMode os.FileMode = 0o755

	// LogFileMode is the mode of a record log created by the sink.
	LogFileMode os.FileMode = 0o644
)
