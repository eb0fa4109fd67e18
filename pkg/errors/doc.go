// Package errors defines the coded errors a collection run fails with.
//
// Every failure that aborts a run carries one ErrorCode so that the CLI, the
// logs and the run metrics agree on why it stopped:
//
//	err := errors.WrapWithContext(errors.ErrCodeCommandFailed,
//	    "vm_stat exited non-zero", cause,
//	    map[string]any{"command": "vm_stat"})
//
// StructuredError implements slog.LogValuer, so passing it to a logger emits
// the code and context as attributes.
package errors
