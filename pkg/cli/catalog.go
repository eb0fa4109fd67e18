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

package cli

import (
	"context"
	"io"
	"strconv"

	"github.com/NVIDIA/hoststat/pkg/header"
	"github.com/NVIDIA/hoststat/pkg/measurement"
	"github.com/NVIDIA/hoststat/pkg/serializer"
)

// catalog is the document printed by -a.
type catalog struct {
	header.Header `json:",inline" yaml:",inline"`

	Fields []measurement.CatalogEntry `json:"fields" yaml:"fields"`
}

func newCatalog(schema measurement.Schema) (*catalog, error) {
	h, err := header.New(header.KindMetricCatalog, version,
		header.WithMetadata("fields", strconv.Itoa(schema.Len())))
	if err != nil {
		return nil, err
	}
	return &catalog{Header: h, Fields: schema.Catalog()}, nil
}

// Columns implements serializer.Tabular.
func (c *catalog) Columns() []string {
	return []string{"POS", "GROUP", "NAME", "UNIT", "DESCRIPTION"}
}

// Rows implements serializer.Tabular.
func (c *catalog) Rows() [][]string {
	rows := make([][]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		rows = append(rows, []string{
			strconv.Itoa(f.Position),
			f.Group,
			f.Name,
			f.Unit,
			f.Description,
		})
	}
	return rows
}

func printCatalog(ctx context.Context, w io.Writer, format serializer.Format) error {
	c, err := newCatalog(measurement.DefaultSchema())
	if err != nil {
		return err
	}
	return serializer.NewWriter(format, w).Serialize(ctx, c)
}
