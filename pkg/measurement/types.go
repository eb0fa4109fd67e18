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
	"math"
	"strconv"
)

// Kind describes how a record field is measured and rendered.
type Kind string

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

const (
	// KindInteger is a whole byte or count value.
	KindInteger Kind = "integer"
	// KindDecimal is a rate or percentage rounded to a fixed number of places.
	KindDecimal Kind = "decimal"
	// KindPlaceholder is a field that cannot be measured on this platform and
	// is always emitted as a literal zero to keep positions stable.
	KindPlaceholder Kind = "placeholder"
)

// Value is a single scalar field of a record.
type Value struct {
	kind   Kind
	i      int64
	f      float64
	places int
}

// Int creates an integer Value.
func Int(v int64) Value {
	return Value{kind: KindInteger, i: v}
}

// Decimal creates a decimal Value rounded to the given number of places.
func Decimal(v float64, places int) Value {
	return Value{kind: KindDecimal, f: Round(v, places), places: places}
}

// Zero creates a placeholder Value for a field the platform cannot measure.
func Zero() Value {
	return Value{kind: KindPlaceholder}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Places returns the number of decimal places of a decimal value.
func (v Value) Places() int {
	return v.places
}

// Int64 returns the value as an integer. Decimals are truncated.
func (v Value) Int64() int64 {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindDecimal:
		return int64(v.f)
	default:
		return 0
	}
}

// Float64 returns the value as a float.
func (v Value) Float64() float64 {
	switch v.kind {
	case KindInteger:
		return float64(v.i)
	case KindDecimal:
		return v.f
	default:
		return 0
	}
}

// String renders the value as a record token. Decimals always print their
// full number of places, so Decimal(5.12, 3) renders as "5.120".
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindDecimal:
		f := v.f
		if f == 0 {
			// normalizes negative zero
			f = 0
		}
		return strconv.FormatFloat(f, 'f', v.places, 64)
	default:
		return "0"
	}
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	if places <= 0 {
		return math.Round(v)
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
