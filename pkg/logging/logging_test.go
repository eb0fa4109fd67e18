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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestNewLogger_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "hoststat", "v1.2.3", "info")

	logger.Debug("hidden")
	logger.Info("visible", slog.Int("fields", 33))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "hoststat", entry["module"])
	assert.Equal(t, "v1.2.3", entry["version"])
	assert.InDelta(t, 33, entry["fields"], 0)
	assert.NotContains(t, entry, "source")
}

func TestNewLogger_DebugSource(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "hoststat", "dev", "debug").Debug("with source")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry, "source")
}

func TestSetDefaultStructuredLoggerWithFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "diag.log")
	closer := SetDefaultStructuredLoggerWithFile("hoststat", "dev", "info", path)
	slog.Info("written to file")
	require.NoError(t, closer.Close())

	assert.FileExists(t, path)
}

func TestSetDefaultStructuredLoggerWithFile_Empty(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closer := SetDefaultStructuredLoggerWithFile("hoststat", "dev", "info", "")
	assert.NoError(t, closer.Close())
}

func TestNewDiagnosticsWriter(t *testing.T) {
	w := NewDiagnosticsWriter("/tmp/x.log")
	assert.Equal(t, "/tmp/x.log", w.Filename)
	assert.Equal(t, diagMaxSizeMB, w.MaxSize)
	assert.True(t, w.Compress)
}
