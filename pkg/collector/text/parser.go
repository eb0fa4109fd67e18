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
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/NVIDIA/hoststat/pkg/errors"
)

// Options for configuring the Parser.
type Option func(*Parser)

// Parser splits external command output into lines and fields, enforcing
// the shape each tool is expected to produce.
type Parser struct {
	tool         string
	delimiter    string
	maxSize      int
	skipComments bool
	keepBlank    bool
}

// WithDelimiter sets the delimiter used to split output into lines.
// Default is newline ("\n").
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the maximum size (in bytes) of output to be parsed.
// Default is 4MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether lines starting with '#' are dropped.
// Default is false since most tools never emit comments.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKeepBlank sets whether blank lines are kept so that line numbers
// match the tool's literal output. Default is false.
func WithKeepBlank(keep bool) Option {
	return func(p *Parser) {
		p.keepBlank = keep
	}
}

// NewParser creates a parser for the output of the named tool. The tool
// name is used in contract violation errors.
func NewParser(tool string, opts ...Option) *Parser {
	p := &Parser{
		tool:         tool,
		delimiter:    "\n",
		maxSize:      4 << 20,
		skipComments: false,
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tool returns the tool name the parser reports errors for.
func (p *Parser) Tool() string {
	return p.tool
}

// Lines splits output into trimmed lines. Blank lines are dropped unless
// WithKeepBlank is set. An error is returned if the output exceeds the
// maximum size or is not valid UTF-8.
func (p *Parser) Lines(out []byte) ([]string, error) {
	if len(out) > p.maxSize {
		return nil, errors.New(errors.ErrCodeInvalidOutput,
			fmt.Sprintf("output of %s exceeds maximum size of %d bytes", p.tool, p.maxSize))
	}

	if !utf8.Valid(out) {
		return nil, errors.New(errors.ErrCodeInvalidOutput,
			fmt.Sprintf("output of %s is not valid UTF-8", p.tool))
	}

	parts := strings.Split(string(out), p.delimiter)

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" && !p.keepBlank {
			continue
		}

		if p.skipComments && strings.HasPrefix(clean, "#") {
			continue
		}

		result = append(result, clean)
	}

	slog.Debug("parsed command output", slog.String("tool", p.tool), slog.Int("lines", len(result)))
	return result, nil
}

// Line returns the 1-based n-th line of the output as counted by Lines.
func (p *Parser) Line(out []byte, n int) (string, error) {
	lines, err := p.Lines(out)
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(lines) {
		return "", errors.Unexpected(p.tool,
			fmt.Sprintf("expected at least %d lines, got %d", n, len(lines)), string(out))
	}
	return lines[n-1], nil
}

// Fields splits a line on whitespace and requires at least min fields.
func (p *Parser) Fields(line string, want int) ([]string, error) {
	fields := strings.Fields(line)
	if len(fields) < want {
		return nil, errors.Unexpected(p.tool,
			fmt.Sprintf("expected at least %d fields, got %d", want, len(fields)), line)
	}
	return fields, nil
}

// Field returns the 1-based n-th whitespace-delimited field of a line.
func (p *Parser) Field(line string, n int) (string, error) {
	fields, err := p.Fields(line, n)
	if err != nil {
		return "", err
	}
	return fields[n-1], nil
}

// LastWithPrefix returns the last line starting with prefix, with the
// prefix removed. Tools that print several samples repeat their headers,
// and only the final sample is of interest.
func (p *Parser) LastWithPrefix(lines []string, prefix string) (string, error) {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], prefix) {
			return strings.TrimSpace(strings.TrimPrefix(lines[i], prefix)), nil
		}
	}
	return "", errors.Unexpected(p.tool,
		fmt.Sprintf("no line starting with %q", prefix), strings.Join(lines, "\n"))
}

// Unexpected builds an INVALID_OUTPUT error for this parser's tool.
func (p *Parser) Unexpected(detail, got string) error {
	return errors.Unexpected(p.tool, detail, got)
}
