// Package log provides structured logging for restat evaluation runs.
//
// The package defines a minimal, slog-compatible Logger interface plus a
// default JSON setup whose handler lifts cockroachdb/errors stack traces
// into a dedicated attribute. Evaluators log through this interface so
// callers can swap in zerolog, zap, or an in-memory test logger without
// touching evaluation code.
package log

import (
	"context"
)

// Logger is a structured logging interface compatible with log/slog.
// Fields are alternating key/value pairs, as in slog.
type Logger interface {
	// Debug logs detailed diagnostic information, e.g. per-repetition timing.
	Debug(msg string, fields ...any)

	// Info logs operational information about an evaluation run.
	Info(msg string, fields ...any)

	// Warn logs tolerated anomalies, e.g. a skipped repetition.
	Warn(msg string, fields ...any)

	// Error logs failures. If a field value is an error, implementations
	// may extract stack trace information from it.
	Error(msg string, fields ...any)

	// With returns a Logger that includes the given fields in every record.
	With(fields ...any) Logger

	// Enabled reports whether records at the given level are emitted,
	// so callers can avoid building expensive attribute values.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level with slog-compatible values.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
