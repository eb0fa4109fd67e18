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

// Package text turns the plain-text output of macOS command line tools into
// lines, fields and numbers.
//
// Every tool the collectors shell out to has an implicit output contract:
// a header line, a fixed number of columns, a known prefix. The Parser
// enforces that contract and reports violations as INVALID_OUTPUT errors
// carrying the tool name and the offending output, so a format change in
// a future OS release surfaces as a clear error instead of a wrong value.
//
// Usage:
//
//	p := text.NewParser("vm_stat")
//	lines, err := p.Lines(out)
//	fields, err := p.Fields(lines[1], 9)
//	free, err := text.ParseScaled(p.Tool(), fields[0])
package text
