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

// Package header provides the header carried by hoststat documents.
//
// The metric catalog printed with -a in JSON or YAML starts with a header
// so consumers can tell the document type and schema version apart:
//
//	kind: MetricCatalog
//	apiVersion: hoststat.nvidia.com/v1
//	metadata:
//	  fields: "33"
//	  timestamp: "2025-01-15T10:30:00Z"
//	  version: v1.0.0
package header
