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

package measurement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hoststat/pkg/errors"
)

func zeros(n int) []Value {
	out := make([]Value, n)
	for i := range out {
		out[i] = Zero()
	}
	return out
}

func fullBuilder(t *testing.T) *Builder {
	t.Helper()
	s := DefaultSchema()
	b := NewBuilder(s)
	for _, g := range s {
		require.NoError(t, b.Add(g.Name, zeros(g.Len())...))
	}
	return b
}

func TestDefaultSchema_Length(t *testing.T) {
	s := DefaultSchema()
	assert.Equal(t, RecordLength, s.Len())
	assert.Len(t, s.Fields(), RecordLength)
	assert.Len(t, s.Catalog(), RecordLength)
}

func TestDefaultSchema_Order(t *testing.T) {
	want := []struct {
		name string
		size int
	}{
		{GroupCPU, 8}, {GroupDisk, 2}, {GroupPaging, 2}, {GroupMemory, 4},
		{GroupSwap, 2}, {GroupSystem, 2}, {GroupProcs, 3}, {GroupLoad, 3},
		{GroupNet, 2}, {GroupAggregate, 2}, {GroupTopology, 3},
	}
	s := DefaultSchema()
	require.Len(t, s, len(want))
	for i, w := range want {
		assert.Equal(t, w.name, s[i].Name, "group %d", i)
		assert.Equal(t, w.size, s[i].Len(), "group %s", w.name)
	}
}

func TestDefaultSchema_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range DefaultSchema().Fields() {
		assert.False(t, seen[f.Name], "duplicate field %s", f.Name)
		seen[f.Name] = true
	}
}

func TestDefaultSchema_Placeholders(t *testing.T) {
	cpu, ok := DefaultSchema().Group(GroupCPU)
	require.True(t, ok)
	for _, f := range cpu.Fields[3:] {
		assert.Equal(t, KindPlaceholder, f.Kind, f.Name)
	}
	sys, ok := DefaultSchema().Group(GroupSystem)
	require.True(t, ok)
	for _, f := range sys.Fields {
		assert.Equal(t, KindPlaceholder, f.Kind, f.Name)
	}
}

func TestCatalog_Positions(t *testing.T) {
	cat := DefaultSchema().Catalog()
	assert.Equal(t, 1, cat[0].Position)
	assert.Equal(t, "cpuUser", cat[0].Name)
	assert.Equal(t, 13, cat[12].Position)
	assert.Equal(t, "memUsed", cat[12].Name)
	assert.Equal(t, GroupMemory, cat[12].Group)
	assert.Equal(t, 33, cat[32].Position)
	assert.Equal(t, "cpuDies", cat[32].Name)
}

func TestBuilder_Complete(t *testing.T) {
	rec, err := fullBuilder(t).Build()
	require.NoError(t, err)

	assert.Equal(t, RecordLength, rec.Len())
	line := rec.CSV()
	assert.Len(t, strings.Split(line, ","), RecordLength)
	assert.NotContains(t, line, "\n")
}

func TestBuilder_OutOfOrder(t *testing.T) {
	b := NewBuilder(DefaultSchema())
	err := b.Add(GroupDisk, Zero(), Zero())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "out of order")
}

func TestBuilder_WrongSize(t *testing.T) {
	b := NewBuilder(DefaultSchema())
	err := b.Add(GroupCPU, Zero(), Zero(), Zero())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 8")
}

func TestBuilder_Incomplete(t *testing.T) {
	b := NewBuilder(DefaultSchema())
	require.NoError(t, b.Add(GroupCPU, zeros(8)...))

	rec, err := b.Build()
	assert.Nil(t, rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), GroupDisk)
	assert.Len(t, b.Remaining(), len(DefaultSchema())-1)
}

func TestBuilder_AfterComplete(t *testing.T) {
	b := fullBuilder(t)
	err := b.Add(GroupCPU, zeros(8)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already complete")
}

func TestRecord_Get(t *testing.T) {
	s := DefaultSchema()
	b := NewBuilder(s)
	for _, g := range s {
		vals := zeros(g.Len())
		if g.Name == GroupMemory {
			vals = []Value{Int(2703360), Int(204800), Int(-113), Int(409600)}
		}
		require.NoError(t, b.Add(g.Name, vals...))
	}
	rec, err := b.Build()
	require.NoError(t, err)

	v, ok := rec.Get("memCach")
	require.True(t, ok)
	assert.Equal(t, int64(-113), v.Int64())

	_, ok = rec.Get("missing")
	assert.False(t, ok)

	tokens := strings.Split(rec.CSV(), ",")
	assert.Equal(t, "2703360", tokens[12])
	assert.Equal(t, "-113", tokens[14])

	vals := rec.Values()
	vals[12] = Int(1)
	again, _ := rec.Get("memUsed")
	assert.Equal(t, int64(2703360), again.Int64(), "Values must return a copy")
}
