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

package topology

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hoststat/pkg/errors"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

func fixedCounts(logical, physical int) CountFunc {
	return func(_ context.Context, l bool) (int, error) {
		if l {
			return logical, nil
		}
		return physical, nil
	}
}

func TestExtractor(t *testing.T) {
	tests := []struct {
		name     string
		counts   CountFunc
		want     []int64
		wantCode errors.ErrorCode
	}{
		{
			name:   "apple silicon",
			counts: fixedCounts(10, 10),
			want:   []int64{10, 10, 1},
		},
		{
			name:   "hyperthreaded",
			counts: fixedCounts(16, 8),
			want:   []int64{16, 8, 1},
		},
		{
			name:     "zero physical",
			counts:   fixedCounts(8, 0),
			wantCode: errors.ErrCodeInvalidOutput,
		},
		{
			name: "query failure",
			counts: func(context.Context, bool) (int, error) {
				return 0, stderrors.New("sysctl failed")
			},
			wantCode: errors.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Extractor{Counts: tt.counts}
			assert.Equal(t, measurement.GroupTopology, e.Group())

			vals, err := e.Extract(context.Background())
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			require.Len(t, vals, 3)
			for i, v := range vals {
				assert.Equal(t, tt.want[i], v.Int64())
			}
		})
	}
}
