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

// Group names in record order.
const (
	GroupCPU       = "cpu"
	GroupDisk      = "disk"
	GroupPaging    = "paging"
	GroupMemory    = "memory"
	GroupSwap      = "swap"
	GroupSystem    = "system"
	GroupProcs     = "procs"
	GroupLoad      = "load"
	GroupNet       = "net"
	GroupAggregate = "aggregate"
	GroupTopology  = "topology"
)

// Decimal precision per measurement family.
const (
	PercentPlaces = 3
	DiskPlaces    = 3
	LoadPlaces    = 3
	NetPlaces     = 1
)

// RecordLength is the number of fields in every record. Downstream parsers
// access fields by position, so this never changes between platforms.
const RecordLength = 33

// Field describes one positional field of the record.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Unit        string `json:"unit" yaml:"unit"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	Description string `json:"description" yaml:"description"`
}

// Group is a fixed-size run of fields produced by a single extractor.
type Group struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Len returns the number of fields in the group.
func (g Group) Len() int {
	return len(g.Fields)
}

// Schema is the ordered list of groups making up a record.
type Schema []Group

// Len returns the total number of fields across all groups.
func (s Schema) Len() int {
	n := 0
	for _, g := range s {
		n += g.Len()
	}
	return n
}

// Group returns the group with the given name.
func (s Schema) Group(name string) (Group, bool) {
	for _, g := range s {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Fields returns all fields flattened in record order.
func (s Schema) Fields() []Field {
	out := make([]Field, 0, s.Len())
	for _, g := range s {
		out = append(out, g.Fields...)
	}
	return out
}

// CatalogEntry is a field annotated with its 1-based record position.
type CatalogEntry struct {
	Position int    `json:"position" yaml:"position"`
	Group    string `json:"group" yaml:"group"`
	Field    `json:",inline" yaml:",inline"`
}

// Catalog returns one entry per field in record order.
func (s Schema) Catalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, s.Len())
	pos := 1
	for _, g := range s {
		for _, f := range g.Fields {
			out = append(out, CatalogEntry{Position: pos, Group: g.Name, Field: f})
			pos++
		}
	}
	return out
}

func integer(name, unit, desc string) Field {
	return Field{Name: name, Unit: unit, Kind: KindInteger, Description: desc}
}

func decimal(name, unit, desc string) Field {
	return Field{Name: name, Unit: unit, Kind: KindDecimal, Description: desc}
}

func placeholder(name, desc string) Field {
	return Field{Name: name, Unit: "-", Kind: KindPlaceholder, Description: desc + " (not available on this platform, always 0)"}
}

// DefaultSchema returns the 33-field record layout shared with the
// cross-platform metrics tooling.
func DefaultSchema() Schema {
	return Schema{
		{Name: GroupCPU, Fields: []Field{
			decimal("cpuUser", "percent", "CPU time spent in user mode"),
			decimal("cpuSys", "percent", "CPU time spent in system mode"),
			decimal("cpuIdle", "percent", "CPU idle time"),
			placeholder("cpuWait", "CPU time waiting for I/O"),
			placeholder("cpuHiq", "CPU time servicing hardware interrupts"),
			placeholder("cpuSiq", "CPU time servicing software interrupts"),
			placeholder("cpuSteal", "CPU time stolen by the hypervisor"),
			placeholder("cpuGuest", "CPU time running guests"),
		}},
		{Name: GroupDisk, Fields: []Field{
			decimal("diskRead", "bytes/s", "Disk read throughput over the disk interval"),
			decimal("diskWrite", "bytes/s", "Disk write throughput over the disk interval"),
		}},
		{Name: GroupPaging, Fields: []Field{
			integer("pagingIn", "bytes", "Paged-in memory during the VM sample"),
			integer("pagingOut", "bytes", "Paged-out memory during the VM sample"),
		}},
		{Name: GroupMemory, Fields: []Field{
			integer("memUsed", "bytes", "App, wired and compressed memory"),
			integer("memBuff", "bytes", "Purgeable memory"),
			integer("memCach", "bytes", "Physical memory minus free and used (may be negative)"),
			integer("memFree", "bytes", "Free memory"),
		}},
		{Name: GroupSwap, Fields: []Field{
			integer("swapUsed", "bytes", "Swap space in use"),
			integer("swapFree", "bytes", "Swap space available"),
		}},
		{Name: GroupSystem, Fields: []Field{
			placeholder("sysInt", "Interrupts per second"),
			placeholder("sysCsw", "Context switches per second"),
		}},
		{Name: GroupProcs, Fields: []Field{
			integer("procRun", "count", "Processes whose state contains R (runnable)"),
			integer("procBlk", "count", "Processes whose state contains U (uninterruptible wait)"),
			integer("procThreads", "count", "Total threads reported by the system monitor"),
		}},
		{Name: GroupLoad, Fields: []Field{
			decimal("load1m", "load", "1-minute load average"),
			decimal("load5m", "load", "5-minute load average"),
			decimal("load15m", "load", "15-minute load average"),
		}},
		{Name: GroupNet, Fields: []Field{
			decimal("netRecv", "bytes/s", "Network receive throughput over the network interval"),
			decimal("netSend", "bytes/s", "Network send throughput over the network interval"),
		}},
		{Name: GroupAggregate, Fields: []Field{
			integer("procTotal", "count", "Total processes reported by the system monitor"),
			integer("procTopCPU", "pid", "PID of the process using the most CPU"),
		}},
		{Name: GroupTopology, Fields: []Field{
			integer("cpuLogical", "count", "Logical CPUs"),
			integer("cpuPhysical", "count", "Physical CPU cores"),
			integer("cpuDies", "count", "CPU dies (not queryable, always 1)"),
		}},
	}
}
