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

// Package cli implements the hoststat command line.
//
// Invoked without flags, hoststat runs one collection and appends a single
// record to the log, printing the log path on success:
//
//	$ hoststat
//	metrics appended to /usr/local/hoststat/log/hoststat.log
//
// # Flags
//
//	-a, --catalog           print the metric catalog (position, group, name, unit, description)
//	-t, --format            catalog format: table, json, yaml (default: table)
//	-h, --help              print usage
//	-V, --version           print version, commit and build date
//	--log-level             log level (env LOG_LEVEL)
//	--diagnostics-file      also write logs to a rotated file
//	--metrics-textfile      write run metrics in node_exporter textfile format
//
// -a, -h and -V never run a system tool and never touch the record log.
//
// # Exit Codes
//
//	0  Success, or an informational flag was given
//	1  Unknown flag, unexpected argument, or a failed run
//
// A run is aborted by SIGINT or SIGTERM, or after defaults.RunTimeout.
// An aborted run appends nothing.
package cli
