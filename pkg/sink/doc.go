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

// Package sink writes completed records to the record log.
//
// The log is an append-only text file holding one line per run: the
// record's values joined by commas with no header, quoting or escaping.
// A log-forwarding agent tails the file and parses fields by position.
//
// The Appender creates the log directory (0755) and file (0644) when they
// do not exist. Rotation is left to an external tool such as newsyslog.
// Tests use an in-memory afero filesystem:
//
//	fs := afero.NewMemMapFs()
//	a := sink.NewAppender("/var/log/hoststat/hoststat.log", sink.WithFs(fs))
//	err := a.Write(ctx, rec)
package sink
