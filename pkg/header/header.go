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

package header

import (
	"fmt"
	"time"
)

// Kind names a hoststat document type.
type Kind string

// KindMetricCatalog is the document printed by "hoststat -a".
const KindMetricCatalog Kind = "MetricCatalog"

// APIVersion is the schema version stamped on every document.
const APIVersion = "hoststat.nvidia.com/v1"

// Metadata keys set by New.
const (
	KeyTimestamp = "timestamp"
	KeyVersion   = "version"
)

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a document type hoststat produces.
func (k Kind) IsValid() bool {
	return k == KindMetricCatalog
}

// Header is embedded inline at the top of JSON and YAML documents.
type Header struct {
	Kind       Kind              `json:"kind" yaml:"kind"`
	APIVersion string            `json:"apiVersion" yaml:"apiVersion"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

type options struct {
	now  func() time.Time
	meta map[string]string
}

// Option adjusts how New fills the header.
type Option func(*options)

// WithClock sets the time source for the timestamp entry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithMetadata adds an extra metadata entry.
func WithMetadata(key, value string) Option {
	return func(o *options) {
		o.meta[key] = value
	}
}

// New returns a header for kind. Metadata always holds a UTC RFC 3339
// timestamp and, when version is non-empty, the tool version.
func New(kind Kind, version string, opts ...Option) (Header, error) {
	if !kind.IsValid() {
		return Header{}, fmt.Errorf("unknown document kind %q", kind)
	}
	o := &options{now: time.Now, meta: map[string]string{}}
	for _, opt := range opts {
		opt(o)
	}

	o.meta[KeyTimestamp] = o.now().UTC().Format(time.RFC3339)
	if version != "" {
		o.meta[KeyVersion] = version
	}
	return Header{Kind: kind, APIVersion: APIVersion, Metadata: o.meta}, nil
}
