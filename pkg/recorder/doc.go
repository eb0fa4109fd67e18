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

// Package recorder runs a collection and appends the resulting record.
//
// A run is strictly sequential:
//
//  1. Capture every snapshot source (top and ps, vm_stat).
//  2. Call each extractor in record order and add its group to a
//     measurement.Builder, which rejects groups that arrive out of order or
//     with the wrong number of values.
//  3. Build the 33-field record.
//  4. Hand the record to the sink.
//
// The first error aborts the run, so the log never receives a partial
// record.
//
// # Usage
//
//	r := &recorder.Recorder{
//	    Version: "v1.0.0",
//	    Config:  config.New(),
//	}
//	rec, err := r.Record(ctx)
//
// Tests inject a collector.Factory and a sink.Sink.
//
// # Metrics
//
// Each run records its duration, outcome, per-stage durations and the
// values of the appended record in a dedicated Prometheus registry. When
// Config.MetricsTextfile is set they are written there in the
// node_exporter textfile format after every run, successful or not.
package recorder
