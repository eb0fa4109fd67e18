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

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/NVIDIA/hoststat/pkg/defaults"
	"github.com/NVIDIA/hoststat/pkg/errors"
)

// Config holds the static settings of a collection run. It is built once by
// New and passed into the pipeline; nothing reads package-level globals.
type Config struct {
	// BaseDir is the base working directory. Directories left empty are
	// resolved relative to it.
	BaseDir string

	// LogDir is the directory holding the record log. Defaults to BaseDir/log.
	LogDir string

	// LogFileName is the record log file name inside LogDir.
	LogFileName string

	// DiskToolDir holds the disk I/O sampler. Defaults to BaseDir/disk.
	DiskToolDir string

	// DiskSamplerName is the disk sampler executable name.
	DiskSamplerName string

	// NetToolDir holds the network counter tool. Defaults to BaseDir/net.
	NetToolDir string

	// NetCounterName is the network counter executable name.
	NetCounterName string

	// DiskInterval is the interval the disk sampler measures over.
	DiskInterval time.Duration

	// NetInterval is the sleep between the two network counter readings.
	NetInterval time.Duration

	// MonitorWindow is the aggregate monitor sampling window.
	MonitorWindow time.Duration

	// CommandTimeout bounds each external command.
	CommandTimeout time.Duration

	// DiagnosticsFile optionally redirects diagnostic logs to a rotated file.
	DiagnosticsFile string

	// MetricsTextfile optionally receives run metrics in Prometheus textfile format.
	MetricsTextfile string
}

// Option is a functional option for configuring Config instances.
type Option func(*Config)

// WithBaseDir sets the base working directory.
func WithBaseDir(dir string) Option {
	return func(c *Config) {
		c.BaseDir = dir
	}
}

// WithLogDir sets the record log directory.
func WithLogDir(dir string) Option {
	return func(c *Config) {
		c.LogDir = dir
	}
}

// WithLogFileName sets the record log file name.
func WithLogFileName(name string) Option {
	return func(c *Config) {
		c.LogFileName = name
	}
}

// WithDiskToolDir sets the directory holding the disk sampler.
func WithDiskToolDir(dir string) Option {
	return func(c *Config) {
		c.DiskToolDir = dir
	}
}

// WithNetToolDir sets the directory holding the network counter tool.
func WithNetToolDir(dir string) Option {
	return func(c *Config) {
		c.NetToolDir = dir
	}
}

// WithDiskInterval sets the disk sampling interval.
func WithDiskInterval(d time.Duration) Option {
	return func(c *Config) {
		c.DiskInterval = d
	}
}

// WithNetInterval sets the network sampling interval.
func WithNetInterval(d time.Duration) Option {
	return func(c *Config) {
		c.NetInterval = d
	}
}

// WithMonitorWindow sets the aggregate monitor sampling window.
func WithMonitorWindow(d time.Duration) Option {
	return func(c *Config) {
		c.MonitorWindow = d
	}
}

// WithCommandTimeout sets the per-command timeout.
func WithCommandTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.CommandTimeout = d
	}
}

// WithDiagnosticsFile sets the rotated diagnostics log file.
func WithDiagnosticsFile(path string) Option {
	return func(c *Config) {
		c.DiagnosticsFile = path
	}
}

// WithMetricsTextfile sets the Prometheus textfile output path.
func WithMetricsTextfile(path string) Option {
	return func(c *Config) {
		c.MetricsTextfile = path
	}
}

// New returns a Config with default values, applies the options, and
// resolves directories left empty against BaseDir.
func New(options ...Option) *Config {
	c := &Config{
		BaseDir:         defaults.BaseDir,
		LogFileName:     defaults.LogFileName,
		DiskSamplerName: defaults.DiskSamplerName,
		NetCounterName:  defaults.NetCounterName,
		DiskInterval:    defaults.DiskInterval,
		NetInterval:     defaults.NetInterval,
		MonitorWindow:   defaults.MonitorWindow,
		CommandTimeout:  defaults.CommandTimeout,
	}
	for _, opt := range options {
		opt(c)
	}

	if c.LogDir == "" {
		c.LogDir = filepath.Join(c.BaseDir, "log")
	}
	if c.DiskToolDir == "" {
		c.DiskToolDir = filepath.Join(c.BaseDir, "disk")
	}
	if c.NetToolDir == "" {
		c.NetToolDir = filepath.Join(c.BaseDir, "net")
	}
	return c
}

// LogPath returns the full path of the record log.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogDir, c.LogFileName)
}

// DiskSamplerPath returns the full path of the disk sampler executable.
func (c *Config) DiskSamplerPath() string {
	return filepath.Join(c.DiskToolDir, c.DiskSamplerName)
}

// NetCounterPath returns the full path of the network counter executable.
func (c *Config) NetCounterPath() string {
	return filepath.Join(c.NetToolDir, c.NetCounterName)
}

// Validate checks if the Config has valid settings.
func (c *Config) Validate() error {
	paths := map[string]string{
		"log directory":     c.LogDir,
		"log file name":     c.LogFileName,
		"disk tool dir":     c.DiskToolDir,
		"disk sampler name": c.DiskSamplerName,
		"network tool dir":  c.NetToolDir,
		"network tool name": c.NetCounterName,
	}
	for name, v := range paths {
		if v == "" {
			return errors.New(errors.ErrCodeInvalidRequest, name+" cannot be empty")
		}
	}

	intervals := []struct {
		name string
		d    time.Duration
	}{
		{"disk interval", c.DiskInterval},
		{"network interval", c.NetInterval},
		{"monitor window", c.MonitorWindow},
	}
	for _, iv := range intervals {
		if iv.d < time.Second || iv.d%time.Second != 0 {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("%s must be a positive whole number of seconds, got %v", iv.name, iv.d))
		}
	}

	if c.CommandTimeout <= 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "command timeout must be positive")
	}
	return nil
}
