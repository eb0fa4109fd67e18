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

package collector

import (
	"github.com/NVIDIA/hoststat/pkg/collector/command"
	"github.com/NVIDIA/hoststat/pkg/collector/disk"
	"github.com/NVIDIA/hoststat/pkg/collector/network"
	"github.com/NVIDIA/hoststat/pkg/collector/process"
	"github.com/NVIDIA/hoststat/pkg/collector/topology"
	"github.com/NVIDIA/hoststat/pkg/collector/vm"
	"github.com/NVIDIA/hoststat/pkg/config"
	"github.com/NVIDIA/hoststat/pkg/measurement"
)

// Factory creates the snapshot sources and extractors of a run.
// It enables dependency injection for testing.
type Factory interface {
	CreateSources() []Source
	CreateCPUExtractor() Extractor
	CreateDiskExtractor() Extractor
	CreatePagingExtractor() Extractor
	CreateMemoryExtractor() Extractor
	CreateSwapExtractor() Extractor
	CreateSystemExtractor() Extractor
	CreateProcsExtractor() Extractor
	CreateLoadExtractor() Extractor
	CreateNetworkExtractor() Extractor
	CreateAggregateExtractor() Extractor
	CreateTopologyExtractor() Extractor
}

// Extractors returns the factory's extractors in record order.
func Extractors(f Factory) []Extractor {
	return []Extractor{
		f.CreateCPUExtractor(),
		f.CreateDiskExtractor(),
		f.CreatePagingExtractor(),
		f.CreateMemoryExtractor(),
		f.CreateSwapExtractor(),
		f.CreateSystemExtractor(),
		f.CreateProcsExtractor(),
		f.CreateLoadExtractor(),
		f.CreateNetworkExtractor(),
		f.CreateAggregateExtractor(),
		f.CreateTopologyExtractor(),
	}
}

// DefaultFactory creates collectors with production dependencies. The
// process and vm sources are shared by the extractors reading them.
type DefaultFactory struct {
	Config *config.Config
	Runner command.Runner

	process *process.Source
	vm      *vm.Source
}

// FactoryOption configures a DefaultFactory.
type FactoryOption func(*DefaultFactory)

// WithRunner sets the command runner.
func WithRunner(r command.Runner) FactoryOption {
	return func(f *DefaultFactory) {
		f.Runner = r
	}
}

// NewDefaultFactory creates a factory for cfg. Commands run through an
// ExecRunner bounded by cfg.CommandTimeout unless WithRunner is given.
func NewDefaultFactory(cfg *config.Config, opts ...FactoryOption) *DefaultFactory {
	if cfg == nil {
		cfg = config.New()
	}

	f := &DefaultFactory{Config: cfg}
	for _, opt := range opts {
		opt(f)
	}
	if f.Runner == nil {
		f.Runner = command.NewExecRunner(cfg.CommandTimeout)
	}

	f.process = process.NewSource(f.Runner, cfg.MonitorWindow)
	f.vm = vm.NewSource(f.Runner)
	return f
}

// CreateSources returns the process and vm snapshot sources.
func (f *DefaultFactory) CreateSources() []Source {
	return []Source{f.process, f.vm}
}

// CreateCPUExtractor creates the CPU utilization extractor.
func (f *DefaultFactory) CreateCPUExtractor() Extractor {
	return &process.CPUExtractor{Source: f.process}
}

// CreateDiskExtractor creates the disk throughput extractor.
func (f *DefaultFactory) CreateDiskExtractor() Extractor {
	return &disk.Extractor{
		Runner:      f.Runner,
		SamplerPath: f.Config.DiskSamplerPath(),
		Interval:    f.Config.DiskInterval,
	}
}

// CreatePagingExtractor creates the paging extractor.
func (f *DefaultFactory) CreatePagingExtractor() Extractor {
	return &vm.PagingExtractor{Source: f.vm}
}

// CreateMemoryExtractor creates the memory extractor.
func (f *DefaultFactory) CreateMemoryExtractor() Extractor {
	return &vm.MemoryExtractor{Source: f.vm, TotalMemory: vm.HostTotalMemory}
}

// CreateSwapExtractor creates the swap extractor.
func (f *DefaultFactory) CreateSwapExtractor() Extractor {
	return &vm.SwapExtractor{Runner: f.Runner}
}

// CreateSystemExtractor creates the interrupt and context switch
// placeholder extractor.
func (f *DefaultFactory) CreateSystemExtractor() Extractor {
	return &PlaceholderExtractor{Name: measurement.GroupSystem, Size: 2}
}

// CreateProcsExtractor creates the process state extractor.
func (f *DefaultFactory) CreateProcsExtractor() Extractor {
	return &process.StateExtractor{Source: f.process}
}

// CreateLoadExtractor creates the load average extractor.
func (f *DefaultFactory) CreateLoadExtractor() Extractor {
	return &process.LoadExtractor{Source: f.process}
}

// CreateNetworkExtractor creates the network throughput extractor.
func (f *DefaultFactory) CreateNetworkExtractor() Extractor {
	return &network.Extractor{
		Runner:   f.Runner,
		ToolPath: f.Config.NetCounterPath(),
		Interval: f.Config.NetInterval,
		Sleep:    network.Sleep,
	}
}

// CreateAggregateExtractor creates the aggregate process extractor.
func (f *DefaultFactory) CreateAggregateExtractor() Extractor {
	return &process.AggregateExtractor{Source: f.process}
}

// CreateTopologyExtractor creates the CPU topology extractor.
func (f *DefaultFactory) CreateTopologyExtractor() Extractor {
	return &topology.Extractor{}
}
