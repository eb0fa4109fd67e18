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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/NVIDIA/hoststat/pkg/collector"
	"github.com/NVIDIA/hoststat/pkg/config"
	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
	"github.com/NVIDIA/hoststat/pkg/sink"
)

type mockSource struct {
	name     string
	err      error
	captured bool
}

func (s *mockSource) Name() string { return s.name }

func (s *mockSource) Capture(ctx context.Context) error {
	s.captured = true
	return s.err
}

type mockExtractor struct {
	group  string
	values []measurement.Value
	err    error
	called *[]string
}

func (e *mockExtractor) Group() string { return e.group }

func (e *mockExtractor) Extract(ctx context.Context) ([]measurement.Value, error) {
	*e.called = append(*e.called, e.group)
	if e.err != nil {
		return nil, e.err
	}
	return e.values, nil
}

// mockFactory returns extractors producing the group's position repeated
// for every field, unless overridden.
type mockFactory struct {
	sources   []*mockSource
	errors    map[string]error
	overrides map[string][]measurement.Value
	called    []string
}

func (f *mockFactory) extractor(group string) collector.Extractor {
	g, _ := measurement.DefaultSchema().Group(group)
	vals := make([]measurement.Value, g.Len())
	for i := range vals {
		vals[i] = measurement.Int(int64(i + 1))
	}
	if o, ok := f.overrides[group]; ok {
		vals = o
	}
	return &mockExtractor{group: group, values: vals, err: f.errors[group], called: &f.called}
}

func (f *mockFactory) CreateSources() []collector.Source {
	out := make([]collector.Source, len(f.sources))
	for i, s := range f.sources {
		out[i] = s
	}
	return out
}

func (f *mockFactory) CreateCPUExtractor() collector.Extractor {
	return f.extractor(measurement.GroupCPU)
}

func (f *mockFactory) CreateDiskExtractor() collector.Extractor {
	return f.extractor(measurement.GroupDisk)
}

func (f *mockFactory) CreatePagingExtractor() collector.Extractor {
	return f.extractor(measurement.GroupPaging)
}

func (f *mockFactory) CreateMemoryExtractor() collector.Extractor {
	return f.extractor(measurement.GroupMemory)
}

func (f *mockFactory) CreateSwapExtractor() collector.Extractor {
	return f.extractor(measurement.GroupSwap)
}

func (f *mockFactory) CreateSystemExtractor() collector.Extractor {
	return f.extractor(measurement.GroupSystem)
}

func (f *mockFactory) CreateProcsExtractor() collector.Extractor {
	return f.extractor(measurement.GroupProcs)
}

func (f *mockFactory) CreateLoadExtractor() collector.Extractor {
	return f.extractor(measurement.GroupLoad)
}

func (f *mockFactory) CreateNetworkExtractor() collector.Extractor {
	return f.extractor(measurement.GroupNet)
}

func (f *mockFactory) CreateAggregateExtractor() collector.Extractor {
	return f.extractor(measurement.GroupAggregate)
}

func (f *mockFactory) CreateTopologyExtractor() collector.Extractor {
	return f.extractor(measurement.GroupTopology)
}

const logPath = "/usr/local/hoststat/log/hoststat.log"

func newRecorder(f collector.Factory, fs afero.Fs) *Recorder {
	return &Recorder{
		Version: "1.0.0",
		Factory: f,
		Sink:    sink.NewAppender(logPath, sink.WithFs(fs)),
		Config:  config.New(),
	}
}

func readLines(t *testing.T, fs afero.Fs) []string {
	t.Helper()
	data, err := afero.ReadFile(fs, logPath)
	if err != nil {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestRecorder_Record(t *testing.T) {
	t.Run("appends one complete record", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		factory := &mockFactory{sources: []*mockSource{{name: "process"}, {name: "vm"}}}

		rec, err := newRecorder(factory, fs).Record(context.Background())
		if err != nil {
			t.Fatalf("Record() error = %v, want nil", err)
		}

		if rec.Len() != measurement.RecordLength {
			t.Errorf("record length = %d, want %d", rec.Len(), measurement.RecordLength)
		}

		for _, s := range factory.sources {
			if !s.captured {
				t.Errorf("source %s not captured", s.name)
			}
		}

		lines := readLines(t, fs)
		if len(lines) != 1 {
			t.Fatalf("log has %d lines, want 1", len(lines))
		}
		if got := len(strings.Split(lines[0], ",")); got != measurement.RecordLength {
			t.Errorf("line has %d fields, want %d", got, measurement.RecordLength)
		}
		if !strings.HasPrefix(lines[0], "1,2,3,4,5,6,7,8,1,2,1,2,1,2,3,4,") {
			t.Errorf("unexpected line prefix: %s", lines[0])
		}
	})

	t.Run("extractors run in record order", func(t *testing.T) {
		factory := &mockFactory{}
		if _, err := newRecorder(factory, afero.NewMemMapFs()).Record(context.Background()); err != nil {
			t.Fatalf("Record() error = %v", err)
		}

		schema := measurement.DefaultSchema()
		if len(factory.called) != len(schema) {
			t.Fatalf("called %d extractors, want %d", len(factory.called), len(schema))
		}
		for i, g := range schema {
			if factory.called[i] != g.Name {
				t.Errorf("extractor %d = %s, want %s", i, factory.called[i], g.Name)
			}
		}
	})
}

func TestRecorder_Failures(t *testing.T) {
	tests := []struct {
		name     string
		factory  *mockFactory
		wantCode errors.ErrorCode
	}{
		{
			name: "source failure",
			factory: &mockFactory{
				sources: []*mockSource{{name: "process", err: errors.New(errors.ErrCodeCommandFailed, "top failed")}},
			},
			wantCode: errors.ErrCodeCommandFailed,
		},
		{
			name: "missing disk sampler",
			factory: &mockFactory{
				errors: map[string]error{
					measurement.GroupDisk: errors.New(errors.ErrCodeNotFound, "required tool /usr/local/hoststat/disk/iosample is missing"),
				},
			},
			wantCode: errors.ErrCodeNotFound,
		},
		{
			name: "last extractor fails",
			factory: &mockFactory{
				errors: map[string]error{
					measurement.GroupTopology: fmt.Errorf("sysctl: %w", errors.New(errors.ErrCodeInternal, "boom")),
				},
			},
			wantCode: errors.ErrCodeInternal,
		},
		{
			name: "wrong group size",
			factory: &mockFactory{
				overrides: map[string][]measurement.Value{
					measurement.GroupSwap: {measurement.Int(1)},
				},
			},
			wantCode: errors.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			_, err := newRecorder(tt.factory, fs).Record(context.Background())
			if err == nil {
				t.Fatal("Record() should return error")
			}
			if got := errors.CodeOf(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}

			exists, _ := afero.Exists(fs, logPath)
			if exists {
				t.Error("log file must not be written when a run fails")
			}
		})
	}
}

func TestRecorder_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fs := afero.NewMemMapFs()
	factory := &mockFactory{sources: []*mockSource{{name: "process"}}}
	if _, err := newRecorder(factory, fs).Record(ctx); err == nil {
		t.Fatal("Record() should fail on canceled context")
	}
	if factory.sources[0].captured {
		t.Error("source should not be captured after cancellation")
	}
	if exists, _ := afero.Exists(fs, logPath); exists {
		t.Error("log file must not be written")
	}
}

func TestRecorder_MetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoststat.prom")

	r := newRecorder(&mockFactory{}, afero.NewMemMapFs())
	r.Config = config.New(config.WithMetricsTextfile(path))

	if _, err := r.Record(context.Background()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}

	for _, want := range []string{
		`hoststat_run_total{code="none",status="success"} 1`,
		"hoststat_record_fields 33",
		`hoststat_record_value{field="cpuUser",group="cpu"} 1`,
		`hoststat_stage_duration_seconds_count{name="cpu",stage="extractor"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics textfile missing %q", want)
		}
	}
}

func TestMetrics_ErrorOutcome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoststat.prom")

	r := newRecorder(&mockFactory{
		errors: map[string]error{measurement.GroupNet: errors.New(errors.ErrCodeNotFound, "missing")},
	}, afero.NewMemMapFs())
	r.Config = config.New(config.WithMetricsTextfile(path))

	if _, err := r.Record(context.Background()); err == nil {
		t.Fatal("Record() should fail")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	if !strings.Contains(string(data), `hoststat_run_total{code="NOT_FOUND",status="error"} 1`) {
		t.Errorf("error outcome not recorded:\n%s", data)
	}
	if strings.Contains(string(data), "hoststat_record_fields 33") {
		t.Error("record gauge must not be set on failure")
	}
}

func TestMetrics_Registry(t *testing.T) {
	r := newRecorder(&mockFactory{}, afero.NewMemMapFs())
	r.Metrics = NewMetrics()

	if _, err := r.Record(context.Background()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	families, err := r.Metrics.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	got := make(map[string]int)
	for _, mf := range families {
		got[mf.GetName()] = len(mf.GetMetric())
	}

	want := map[string]int{
		"hoststat_run_duration_seconds":   1,
		"hoststat_run_total":              1,
		"hoststat_record_fields":          1,
		"hoststat_record_value":           measurement.RecordLength,
		"hoststat_stage_duration_seconds": len(measurement.DefaultSchema()),
	}
	for name, n := range want {
		if got[name] != n {
			t.Errorf("%s has %d series, want %d", name, got[name], n)
		}
	}
}
