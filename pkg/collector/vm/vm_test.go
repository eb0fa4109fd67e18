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

package vm

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hoststat/pkg/collector/command"
	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

const vmStatOutput = `Mach Virtual Memory Statistics: (page size of 16384 bytes)
    free   active   specul inactive throttle    wired  prgable   faults     copy    0fill reactive   purged file-backed anonymous cmprssed cmprssor  dcomprs   comprs  pageins  pageout  swapins swapouts
   99999    88888     7777    66666        0    55555     4444     321M     123K     200M    12345    67890      111111    222222    33333    44444     5555     6666  987654    12345        0        0
     100    30000      700    20000        0      200       50     1234       12      567        0        0       90000       500       10    40000        0        0        7        3        0        0
`

func strs(vals []measurement.Value) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.String()
	}
	return out
}

func fixedPageSize(n int64) PageSizeFunc {
	return func() int64 { return n }
}

func fixedTotal(n int64) TotalMemoryFunc {
	return func(context.Context) (int64, error) { return n, nil }
}

func capturedSource(t *testing.T, pageSize int64) *Source {
	t.Helper()
	f := command.NewFakeRunner().On("vm_stat -c 2 1", vmStatOutput)
	src := &Source{Runner: f, PageSize: fixedPageSize(pageSize)}
	require.NoError(t, src.Capture(context.Background()))
	return src
}

func TestParseSample_SecondRow(t *testing.T) {
	s, err := ParseSample([]byte(vmStatOutput))
	require.NoError(t, err)

	assert.Equal(t, &Sample{
		Free:       100,
		Active:     30000,
		Inactive:   20000,
		Wired:      200,
		Purgeable:  50,
		Anonymous:  500,
		Compressed: 10,
		Pageins:    7,
		Pageouts:   3,
	}, s)
}

func TestParseSample_ScaledCounters(t *testing.T) {
	out := `    free   active inactive    wired  prgable anonymous cmprssed  pageins  pageout
      1        1        1        1        1         1        1        1        1
     2K       1M        1        1        1         1        1       1G        1
`
	s, err := ParseSample([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, int64(2048), s.Free)
	assert.Equal(t, int64(1<<20), s.Active)
	assert.Equal(t, int64(1<<30), s.Pageins)
}

func TestParseSample_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "no header",
			input: "1 2 3\n4 5 6\n",
		},
		{
			name:  "missing column",
			input: "free active\n1 2\n3 4\n",
		},
		{
			name: "single sample",
			input: `free active inactive wired prgable anonymous cmprssed pageins pageout
1 1 1 1 1 1 1 1 1
`,
		},
		{
			name: "short row",
			input: `free active inactive wired prgable anonymous cmprssed pageins pageout
1 1 1 1 1 1 1 1 1
1 1 1
`,
		},
		{
			name: "non numeric counter",
			input: `free active inactive wired prgable anonymous cmprssed pageins pageout
1 1 1 1 1 1 1 1 1
x 1 1 1 1 1 1 1 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSample([]byte(tt.input))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidOutput, errors.CodeOf(err))
		})
	}
}

func TestSource_Capture(t *testing.T) {
	src := capturedSource(t, 4096)
	assert.Equal(t, SourceName, src.Name())

	s, err := src.Sample()
	require.NoError(t, err)
	assert.Equal(t, int64(4096), s.PageSize)
}

func TestSource_NotCaptured(t *testing.T) {
	_, err := NewSource(command.NewFakeRunner()).Sample()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))
}

func TestSource_BadPageSize(t *testing.T) {
	src := &Source{Runner: command.NewFakeRunner(), PageSize: fixedPageSize(0)}
	require.Error(t, src.Capture(context.Background()))
}

func TestHostPageSize(t *testing.T) {
	assert.Positive(t, HostPageSize())
}

func TestPagingExtractor(t *testing.T) {
	tests := []struct {
		name     string
		pageSize int64
		want     []string
	}{
		{name: "4k pages", pageSize: 4096, want: []string{"28672", "12288"}},
		{name: "16k pages", pageSize: 16384, want: []string{"114688", "49152"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &PagingExtractor{Source: capturedSource(t, tt.pageSize)}
			assert.Equal(t, measurement.GroupPaging, e.Group())

			vals, err := e.Extract(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, strs(vals))
		})
	}
}

func TestBreakdown_NegativeCache(t *testing.T) {
	s := &Sample{
		Free:       100,
		Anonymous:  500,
		Purgeable:  50,
		Wired:      200,
		Compressed: 10,
		PageSize:   4096,
	}

	// cached goes negative when used and free exceed the reported total
	m := Breakdown(s, 3000000)
	assert.Equal(t, int64(2703360), m.Used)
	assert.Equal(t, int64(409600), m.Free)
	assert.Equal(t, int64(-112960), m.Cached)
	assert.Equal(t, int64(204800), m.Buffers)
	assert.Equal(t, int64(3000000), m.Used+m.Free+m.Cached)
}

func TestMemoryExtractor(t *testing.T) {
	e := &MemoryExtractor{
		Source:      capturedSource(t, 4096),
		TotalMemory: fixedTotal(3000000),
	}
	assert.Equal(t, measurement.GroupMemory, e.Group())

	vals, err := e.Extract(context.Background())
	require.NoError(t, err)
	// used, buff, cach, free
	assert.Equal(t, []string{"2703360", "204800", "-112960", "409600"}, strs(vals))
}

func TestMemoryExtractor_TotalFailure(t *testing.T) {
	e := &MemoryExtractor{
		Source: capturedSource(t, 4096),
		TotalMemory: func(context.Context) (int64, error) {
			return 0, stderrors.New("sysctl hw.memsize failed")
		},
	}

	_, err := e.Extract(context.Background())
	require.Error(t, err)
}

func TestParseSwap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantUsed int64
		wantFree int64
		wantErr  bool
	}{
		{
			name:     "encrypted swap",
			input:    "vm.swapusage: total = 2048.00M  used = 1024.50M  free = 1023.50M  (encrypted)\n",
			wantUsed: 1074266112,
			wantFree: 1073217536,
		},
		{
			name:     "no swap",
			input:    "vm.swapusage: total = 0.00M  used = 0.00M  free = 0.00M  (encrypted)",
			wantUsed: 0,
			wantFree: 0,
		},
		{
			name:     "exactly ten tokens",
			input:    "vm.swapusage: total = 1.00M used = 0.25M free = 0.75M",
			wantUsed: 262144,
			wantFree: 786432,
		},
		{
			name:    "too few tokens",
			input:   "vm.swapusage: total = 0.00M used = 0.00M",
			wantErr: true,
		},
		{
			name:    "unit changed",
			input:   "vm.swapusage: total = 2.00G  used = 1.00G  free = 1.00G",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			used, free, err := ParseSwap([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidOutput, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUsed, used)
			assert.Equal(t, tt.wantFree, free)
		})
	}
}

func TestSwapExtractor(t *testing.T) {
	f := command.NewFakeRunner().
		On("sysctl vm.swapusage", "vm.swapusage: total = 3072.00M  used = 2048.00M  free = 1024.00M  (encrypted)\n")
	e := &SwapExtractor{Runner: f}
	assert.Equal(t, measurement.GroupSwap, e.Group())

	vals, err := e.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2147483648", "1073741824"}, strs(vals))
}

func TestSwapExtractor_CommandFailure(t *testing.T) {
	f := command.NewFakeRunner().
		Fail("sysctl", errors.New(errors.ErrCodeCommandFailed, "exit status 1"))

	_, err := (&SwapExtractor{Runner: f}).Extract(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCommandFailed, errors.CodeOf(err))
}
