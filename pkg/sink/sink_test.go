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

package sink

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hoststat/pkg/defaults"
	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

const logPath = "/usr/local/hoststat/log/hoststat.log"

func record(t *testing.T, seed int64) *measurement.Record {
	t.Helper()
	b := measurement.NewBuilder(measurement.DefaultSchema())
	for _, g := range measurement.DefaultSchema() {
		vals := make([]measurement.Value, g.Len())
		for i := range vals {
			vals[i] = measurement.Int(seed)
		}
		require.NoError(t, b.Add(g.Name, vals...))
	}
	rec, err := b.Build()
	require.NoError(t, err)
	return rec
}

func TestAppender_FreshEnvironment(t *testing.T) {
	fs := afero.NewMemMapFs()
	a := NewAppender(logPath, WithFs(fs))
	assert.Equal(t, logPath, a.Path())

	require.NoError(t, a.Write(context.Background(), record(t, 1)))

	info, err := fs.Stat("/usr/local/hoststat/log")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := afero.ReadFile(fs, logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Len(t, strings.Split(lines[0], ","), measurement.RecordLength)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestAppender_Appends(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, logPath, []byte("existing\n"), defaults.LogFileMode))

	a := NewAppender(logPath, WithFs(fs))
	require.NoError(t, a.Write(context.Background(), record(t, 1)))
	require.NoError(t, a.Write(context.Background(), record(t, 2)))

	data, err := afero.ReadFile(fs, logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "existing", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,1,"))
	assert.True(t, strings.HasPrefix(lines[2], "2,2,"))
}

func TestAppender_NilRecord(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := NewAppender(logPath, WithFs(fs)).Write(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))

	exists, _ := afero.Exists(fs, logPath)
	assert.False(t, exists)
}

func TestAppender_CanceledContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, NewAppender(logPath, WithFs(fs)).Write(ctx, record(t, 1)))

	exists, _ := afero.Exists(fs, logPath)
	assert.False(t, exists)
}

func TestAppender_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := NewAppender(logPath, WithFs(fs)).Write(context.Background(), record(t, 1))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))
}
