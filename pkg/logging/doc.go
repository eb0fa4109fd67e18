// Package logging configures the process-wide slog logger for hoststat.
//
// Entries are JSON on stderr and carry "module" and "version" attributes.
// The level comes from the --log-level flag or LOG_LEVEL and is parsed
// case-insensitively (debug, info, warn or warning, error). Unknown values
// fall back to info. At debug level entries also carry their source location.
//
//	logging.SetDefaultStructuredLoggerWithLevel("hoststat", version, "debug")
//	slog.Info("collection run complete", "fields", 33)
//
// SetDefaultStructuredLoggerWithFile also copies every entry to a diagnostics
// file that lumberjack rotates. The caller closes the returned io.Closer
// before exit:
//
//	closer := logging.SetDefaultStructuredLoggerWithFile("hoststat", version, "info",
//	    "/usr/local/hoststat/log/hoststat-diag.log")
//	defer closer.Close()
//
// Only the collector's own log entries go there. The record log is written by
// pkg/sink and never rotated.
//
// A successful run logs a line like:
//
//	{"time":"2025-01-15T10:30:00.123Z","level":"INFO","msg":"collection run complete",
//	 "module":"hoststat","version":"v1.0.0","run":"5f0c3e9e-8d2b-4f41-9d0e-3b2f8c1d7a10",
//	 "fields":33,"duration":7012345678}
package logging
