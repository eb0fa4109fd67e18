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

package text

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NVIDIA/hoststat/pkg/errors"
)

// ParseInt parses a base-10 integer reported by tool.
func ParseInt(tool, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Unexpected(tool, fmt.Sprintf("%q is not an integer", s), s)
	}
	return v, nil
}

// ParseFloat parses a decimal number reported by tool. A trailing '%' or
// ',' is tolerated since top and friends decorate their numbers.
func ParseFloat(tool, s string) (float64, error) {
	clean := strings.TrimRight(strings.TrimSpace(s), "%,")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, errors.Unexpected(tool, fmt.Sprintf("%q is not a number", s), s)
	}
	return v, nil
}

// ParseScaled parses a page count that may carry a K, M or G suffix, as
// vm_stat prints once a column outgrows its width. Each step is a factor
// of 1024.
func ParseScaled(tool, s string) (int64, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, errors.Unexpected(tool, "empty count", s)
	}

	var mult int64 = 1
	switch clean[len(clean)-1] {
	case 'K', 'k':
		mult = 1 << 10
	case 'M', 'm':
		mult = 1 << 20
	case 'G', 'g':
		mult = 1 << 30
	}
	if mult != 1 {
		clean = clean[:len(clean)-1]
	}

	if strings.Contains(clean, ".") {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0, errors.Unexpected(tool, fmt.Sprintf("%q is not a count", s), s)
		}
		return int64(f*float64(mult) + 0.5), nil
	}

	v, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, errors.Unexpected(tool, fmt.Sprintf("%q is not a count", s), s)
	}
	return v * mult, nil
}
