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
	"fmt"
	"strings"

	"github.com/NVIDIA/hoststat/pkg/errors"
)

// Record is a complete, schema-ordered set of values.
type Record struct {
	schema Schema
	values []Value
}

// Len returns the number of values in the record.
func (r *Record) Len() int {
	return len(r.values)
}

// Values returns a copy of the record values in order.
func (r *Record) Values() []Value {
	out := make([]Value, len(r.values))
	copy(out, r.values)
	return out
}

// Get returns the value of the named field.
func (r *Record) Get(name string) (Value, bool) {
	for i, f := range r.schema.Fields() {
		if f.Name == name {
			return r.values[i], true
		}
	}
	return Value{}, false
}

// CSV renders the record as a single comma-separated line without a
// trailing newline. Values never contain commas, so no quoting is applied.
func (r *Record) CSV() string {
	tokens := make([]string, len(r.values))
	for i, v := range r.values {
		tokens[i] = v.String()
	}
	return strings.Join(tokens, ",")
}

// Builder assembles a Record from per-group value slices. Groups must be
// added in schema order and each must carry exactly the group's field count.
type Builder struct {
	schema Schema
	next   int
	values []Value
}

// NewBuilder creates a Builder for the given schema.
func NewBuilder(s Schema) *Builder {
	return &Builder{
		schema: s,
		values: make([]Value, 0, s.Len()),
	}
}

// Add appends the values of the named group.
func (b *Builder) Add(group string, values ...Value) error {
	if b.next >= len(b.schema) {
		return errors.New(errors.ErrCodeInternal,
			fmt.Sprintf("record already complete, unexpected group %q", group))
	}

	want := b.schema[b.next]
	if want.Name != group {
		return errors.New(errors.ErrCodeInternal,
			fmt.Sprintf("group %q added out of order, expected %q", group, want.Name))
	}
	if len(values) != want.Len() {
		return errors.New(errors.ErrCodeInternal,
			fmt.Sprintf("group %q has %d values, expected %d", group, len(values), want.Len()))
	}

	b.values = append(b.values, values...)
	b.next++
	return nil
}

// Remaining returns the names of groups not yet added.
func (b *Builder) Remaining() []string {
	out := make([]string, 0, len(b.schema)-b.next)
	for _, g := range b.schema[b.next:] {
		out = append(out, g.Name)
	}
	return out
}

// Build returns the finished Record. It fails unless every group was added.
func (b *Builder) Build() (*Record, error) {
	if b.next != len(b.schema) {
		return nil, errors.New(errors.ErrCodeInternal,
			fmt.Sprintf("record incomplete, missing groups %v", b.Remaining()))
	}

	values := make([]Value, len(b.values))
	copy(values, b.values)
	return &Record{schema: b.schema, values: values}, nil
}
