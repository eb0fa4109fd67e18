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

package recorder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

// Metrics describes a single collection run in Prometheus form. A run is
// a short-lived process, so metrics are not scraped; they are written once
// in the node_exporter textfile format when a path is configured.
type Metrics struct {
	registry *prometheus.Registry

	runDuration   prometheus.Histogram
	runTotal      *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	recordFields  prometheus.Gauge
	recordValue   *prometheus.GaugeVec
}

// NewMetrics registers the run metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hoststat_run_duration_seconds",
				Help:    "Time taken to collect and append a complete record",
				Buckets: []float64{1, 5, 10, 15, 20, 30, 60},
			},
		),

		runTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hoststat_run_total",
				Help: "Number of collection runs by outcome",
			},
			[]string{"status", "code"}, // success or error, structured error code
		),

		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hoststat_stage_duration_seconds",
				Help:    "Time taken by individual snapshot sources and extractors",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"stage", "name"}, // source or extractor, source name or group
		),

		recordFields: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hoststat_record_fields",
				Help: "Number of fields in the last appended record",
			},
		),

		recordValue: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hoststat_record_value",
				Help: "Value of each field of the last appended record",
			},
			[]string{"group", "field"},
		),
	}
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeStage(stage, name string, seconds float64) {
	m.stageDuration.WithLabelValues(stage, name).Observe(seconds)
}

func (m *Metrics) observeRun(seconds float64, err error) {
	m.runDuration.Observe(seconds)
	if err != nil {
		code := string(errors.CodeOf(err))
		if code == "" {
			code = string(errors.ErrCodeInternal)
		}
		m.runTotal.WithLabelValues("error", code).Inc()
		return
	}
	m.runTotal.WithLabelValues("success", "none").Inc()
}

func (m *Metrics) observeRecord(schema measurement.Schema, rec *measurement.Record) {
	m.recordFields.Set(float64(rec.Len()))

	vals := rec.Values()
	i := 0
	for _, g := range schema {
		for _, f := range g.Fields {
			m.recordValue.WithLabelValues(g.Name, f.Name).Set(vals[i].Float64())
			i++
		}
	}
}

// WriteTextfile writes the metrics to path in the node_exporter textfile
// format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write metrics textfile", err,
			map[string]any{"path": path})
	}
	return nil
}
