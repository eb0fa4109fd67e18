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

package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

var formats = []Format{FormatTable, FormatJSON, FormatYAML}

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	for _, known := range formats {
		if f == known {
			return false
		}
	}
	return true
}

// SupportedFormats lists the accepted format names, table first.
func SupportedFormats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// ParseFormat converts a user supplied name to a Format. Matching ignores case
// and surrounding space.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown format %q, supported: %s", name, strings.Join(SupportedFormats(), ", "))
	}
	return f, nil
}

// Writer renders values to out in a single format.
type Writer struct {
	format Format
	out    io.Writer
}

// NewWriter returns a Writer for format. A nil out means stdout and an
// unknown format falls back to table.
func NewWriter(format Format, out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	if format.IsUnknown() {
		slog.Warn("unknown format, using table", slog.String("format", string(format)))
		format = FormatTable
	}
	return &Writer{format: format, out: out}
}

// Format returns the format the writer renders.
func (w *Writer) Format() Format {
	return w.format
}

// Serialize renders v. The table format requires v to implement Tabular.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.format == FormatTable {
		t, ok := v.(Tabular)
		if !ok {
			return fmt.Errorf("table format needs a Tabular value, got %T", v)
		}
		return writeTable(w.out, t)
	}
	return w.encode(v)
}

type encoder interface {
	Encode(v any) error
}

type nopFlusher struct{ encoder }

func (nopFlusher) Close() error { return nil }

func (w *Writer) encode(v any) error {
	var enc interface {
		encoder
		io.Closer
	}
	switch w.format {
	case FormatJSON:
		je := json.NewEncoder(w.out)
		je.SetIndent("", "  ")
		enc = nopFlusher{je}
	case FormatYAML:
		ye := yaml.NewEncoder(w.out)
		ye.SetIndent(2)
		enc = ye
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", w.format, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", w.format, err)
	}
	return nil
}

func writeTable(out io.Writer, t Tabular) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns(), "\t"))
	for _, row := range t.Rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
