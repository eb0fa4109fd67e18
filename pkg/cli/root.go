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
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hoststat/pkg/config"
	"github.com/NVIDIA/hoststat/pkg/defaults"
	"github.com/NVIDIA/hoststat/pkg/logging"
	"github.com/NVIDIA/hoststat/pkg/measurement"
	"github.com/NVIDIA/hoststat/pkg/recorder"
	"github.com/NVIDIA/hoststat/pkg/serializer"
)

const (
	name           = "hoststat"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks invocations rejected before any metric is collected.
var errUsage = stderrors.New("invalid usage")

// recordFunc performs one collection run.
type recordFunc func(ctx context.Context, cfg *config.Config) (*measurement.Record, error)

// app holds the collaborators of the root command so tests can replace
// the recorder and keep logging off the global default.
type app struct {
	stdout io.Writer
	stderr io.Writer

	record       recordFunc
	setupLogging func(level, file string) io.Closer
}

func defaultApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		record: func(ctx context.Context, cfg *config.Config) (*measurement.Record, error) {
			r := &recorder.Recorder{Version: version, Config: cfg}
			return r.Record(ctx)
		},
		setupLogging: func(level, file string) io.Closer {
			return logging.SetDefaultStructuredLoggerWithFile(name, version, level, file)
		},
	}
}

// Execute runs the root command and exits non-zero on failure. It is
// called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM so an interrupted run writes nothing
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, aborting run...")
		cancel()
	}()

	if err := defaultApp().rootCmd().Run(ctx, os.Args); err != nil {
		if !stderrors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cli.Command {
	return &cli.Command{
		Name:        name,
		Usage:       "Append one line of macOS host metrics to the record log",
		HideHelp:    true,
		HideVersion: true,
		Writer:      a.stdout,
		ErrWriter:   a.stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "catalog",
				Aliases: []string{"a"},
				Usage:   "Print the metric catalog and exit",
			},
			&cli.BoolFlag{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "Print usage and exit",
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"V"},
				Usage:   "Print version information and exit",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   fmt.Sprintf("Catalog format: %v", serializer.SupportedFormats()),
				Value:   string(serializer.FormatTable),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "diagnostics-file",
				Usage:   "Also write the collector's own logs to this rotated file",
				Sources: cli.EnvVars("HOSTSTAT_DIAGNOSTICS_FILE"),
			},
			&cli.StringFlag{
				Name:    "metrics-textfile",
				Usage:   "Write run metrics to this file in node_exporter textfile format",
				Sources: cli.EnvVars("HOSTSTAT_METRICS_TEXTFILE"),
			},
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			fmt.Fprintf(a.stderr, "%s: %v\n\n", name, err)
			printUsage(a.stderr)
			return fmt.Errorf("%w: %w", errUsage, err)
		},
		Action: a.action,

		// -h may be routed through the built-in help printer; keep both
		// paths printing the same text.
		CustomRootCommandHelpTemplate: usageText(),
	}
}

func (a *app) action(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		fmt.Fprintf(a.stderr, "%s: unexpected argument %q\n\n", name, cmd.Args().First())
		printUsage(a.stderr)
		return errUsage
	}

	switch {
	case cmd.Bool("help"):
		printUsage(a.stdout)
		return nil
	case cmd.Bool("version"):
		printVersion(a.stdout)
		return nil
	case cmd.Bool("catalog"):
		format, err := serializer.ParseFormat(cmd.String("format"))
		if err != nil {
			return err
		}
		return printCatalog(ctx, a.stdout, format)
	}

	return a.run(ctx, cmd)
}

func (a *app) run(ctx context.Context, cmd *cli.Command) error {
	closer := a.setupLogging(cmd.String("log-level"), cmd.String("diagnostics-file"))
	defer closer.Close()

	cfg := config.New(
		config.WithDiagnosticsFile(cmd.String("diagnostics-file")),
		config.WithMetricsTextfile(cmd.String("metrics-textfile")),
	)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"log", cfg.LogPath())

	ctx, cancel := context.WithTimeout(ctx, defaults.RunTimeout)
	defer cancel()

	if _, err := a.record(ctx, cfg); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "metrics appended to %s\n", cfg.LogPath())
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText())
}

func usageText() string {
	return fmt.Sprintf(`Usage: %s [options]

Samples CPU, disk, memory, swap, paging, process, load, network and CPU
topology metrics once and appends a single %d-field line to the record log.

Options:
  -a, --catalog                 print the metric catalog and exit
  -t, --format FORMAT           catalog format: table, json or yaml (default: table)
  -h, --help                    print this help and exit
  -V, --version                 print version information and exit
      --log-level LEVEL         log level: debug, info, warn or error (env: LOG_LEVEL)
      --diagnostics-file PATH   also write logs to a rotated file (env: HOSTSTAT_DIAGNOSTICS_FILE)
      --metrics-textfile PATH   write run metrics for node_exporter (env: HOSTSTAT_METRICS_TEXTFILE)
`, name, measurement.RecordLength)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\ncommit: %s\nbuilt:  %s\n", name, version, commit, date)
}
