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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/hoststat/pkg/collector"
	"github.com/NVIDIA/hoststat/pkg/config"
	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
	"github.com/NVIDIA/hoststat/pkg/sink"
)

// Recorder runs one collection: it captures the snapshot sources, runs the
// extractors in record order, assembles the record and hands it to the
// sink. Nothing is written unless every step succeeds.
type Recorder struct {
	// Version is the collector version, logged with each run.
	Version string

	// Factory creates sources and extractors. If nil, a DefaultFactory for
	// Config is used.
	Factory collector.Factory

	// Sink receives the completed record. If nil, an Appender writing to
	// Config.LogPath() is used.
	Sink sink.Sink

	// Config is the run configuration. If nil, defaults are used.
	Config *config.Config

	// Schema is the record layout. If nil, measurement.DefaultSchema().
	Schema measurement.Schema

	// Metrics records run metrics. If nil, a fresh set is created.
	Metrics *Metrics
}

func (r *Recorder) init() {
	if r.Config == nil {
		r.Config = config.New()
	}
	if r.Factory == nil {
		r.Factory = collector.NewDefaultFactory(r.Config)
	}
	if r.Sink == nil {
		r.Sink = sink.NewAppender(r.Config.LogPath())
	}
	if r.Schema == nil {
		r.Schema = measurement.DefaultSchema()
	}
	if r.Metrics == nil {
		r.Metrics = NewMetrics()
	}
}

// Record performs a complete run and returns the appended record.
func (r *Recorder) Record(ctx context.Context) (*measurement.Record, error) {
	r.init()

	runID := uuid.New().String()
	log := slog.With(slog.String("run", runID))
	log.Debug("starting collection run", slog.String("version", r.Version))

	start := time.Now()
	rec, err := r.record(ctx, log)
	elapsed := time.Since(start)

	r.Metrics.observeRun(elapsed.Seconds(), err)
	if err == nil {
		r.Metrics.observeRecord(r.Schema, rec)
	}

	if path := r.Config.MetricsTextfile; path != "" {
		if werr := r.Metrics.WriteTextfile(path); werr != nil {
			log.Warn("failed to write metrics textfile", slog.String("error", werr.Error()))
		}
	}

	if err != nil {
		attrs := []any{slog.String("error", err.Error()), slog.Duration("duration", elapsed)}
		if se, ok := errors.Find(err); ok {
			attrs = append(attrs, slog.Any("detail", se))
		}
		log.Error("collection run failed", attrs...)
		return nil, err
	}

	log.Info("collection run complete",
		slog.Int("fields", rec.Len()),
		slog.Duration("duration", elapsed))
	return rec, nil
}

func (r *Recorder) record(ctx context.Context, log *slog.Logger) (*measurement.Record, error) {
	for _, src := range r.Factory.CreateSources() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stageStart := time.Now()
		err := src.Capture(ctx)
		r.Metrics.observeStage("source", src.Name(), time.Since(stageStart).Seconds())
		if err != nil {
			return nil, fmt.Errorf("failed to capture %s snapshot: %w", src.Name(), err)
		}
		log.Debug("captured snapshot", slog.String("source", src.Name()))
	}

	b := measurement.NewBuilder(r.Schema)
	for _, ext := range collector.Extractors(r.Factory) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stageStart := time.Now()
		vals, err := ext.Extract(ctx)
		r.Metrics.observeStage("extractor", ext.Group(), time.Since(stageStart).Seconds())
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s metrics: %w", ext.Group(), err)
		}

		if err := b.Add(ext.Group(), vals...); err != nil {
			return nil, err
		}
		log.Debug("extracted group", slog.String("group", ext.Group()), slog.Int("values", len(vals)))
	}

	rec, err := b.Build()
	if err != nil {
		return nil, err
	}

	if err := r.Sink.Write(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to write record: %w", err)
	}
	return rec, nil
}
