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

// Package network extracts network receive and send rates from two
// readings of an external counter tool.
//
// The tool takes no arguments and prints a line whose 2nd and 4th fields
// are the cumulative bytes received and sent since boot. The extractor
// reads it, sleeps for the configured interval, reads it again and reports
// (end - start) / interval with one decimal. The sleep honors context
// cancellation so an interrupted run stops without writing a record.
package network
