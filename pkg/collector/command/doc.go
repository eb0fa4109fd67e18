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

// Package command runs the external macOS tools the collectors read from.
//
// Runner abstracts process execution so collectors can be tested against
// canned output. ExecRunner is the production implementation: it resolves
// the executable, forces LC_ALL=C, applies a per-command timeout and maps
// failures onto structured error codes:
//
//   - NOT_FOUND: the executable does not exist or is not executable
//   - TIMEOUT: the command did not finish within the timeout
//   - COMMAND_FAILED: the command could not start or exited non-zero
//
// Require performs the presence check for the optional helper tools and
// attaches a remediation hint to the error.
//
// FakeRunner replays canned output keyed by command line and records each
// call, which lets tests assert that no command was run at all.
package command
