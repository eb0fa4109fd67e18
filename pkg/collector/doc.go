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

// Package collector defines how host metrics are gathered for a record.
//
// # Overview
//
// A run first captures the shared snapshot sources and then calls one
// extractor per record group in schema order. Sources run the expensive
// system tools once; extractors only derive values from them or perform
// their own interval sample.
//
// # Core Interfaces
//
//	type Source interface {
//	    Name() string
//	    Capture(ctx context.Context) error
//	}
//
//	type Extractor interface {
//	    Group() string
//	    Extract(ctx context.Context) ([]measurement.Value, error)
//	}
//
// # Factory Pattern
//
// The Factory interface abstracts creation of sources and extractors so
// the recorder can be tested without touching the host:
//
//	factory := collector.NewDefaultFactory(cfg)
//	for _, s := range factory.CreateSources() {
//	    if err := s.Capture(ctx); err != nil {
//	        return err
//	    }
//	}
//	for _, e := range collector.Extractors(factory) {
//	    vals, err := e.Extract(ctx)
//	    ...
//	}
//
// DefaultFactory shares a single process source and a single vm source
// across the extractors that read them, so CPU, process state, load and
// aggregate values come from the same top and ps output, and paging and
// memory from the same vm_stat sample.
//
// # Subpackages
//
//   - collector/command - external tool execution and the fake runner
//   - collector/text - output parsing contract and numeric helpers
//   - collector/process - top and ps snapshot; cpu, procs, load, aggregate
//   - collector/vm - vm_stat snapshot; paging, memory, swap
//   - collector/disk - disk sampler interval rates
//   - collector/network - network counter interval rates
//   - collector/topology - CPU counts
//
// # Error Handling
//
// Every error aborts the run. Missing helper tools are NOT_FOUND, output
// that breaks a tool's parsing contract is INVALID_OUTPUT and failed
// commands are COMMAND_FAILED.
package collector
