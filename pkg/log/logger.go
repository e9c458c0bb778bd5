package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// SetupLogger installs the default slog logger: JSON output on stdout,
// wrapped by the stack trace formatting handler.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr wraps an error for slog so the handler can pick it up.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// slogLogger adapts the process-wide slog default to the Logger interface.
type slogLogger struct {
	inner *slog.Logger
}

// Default returns a Logger backed by slog's default logger.
func Default() Logger {
	return &slogLogger{inner: slog.Default()}
}

// WithName returns a Logger tagged with a component name.
func WithName(name string) Logger {
	return &slogLogger{inner: slog.Default().With(ComponentKey, name)}
}

func (l *slogLogger) Debug(msg string, fields ...any) { l.inner.Debug(msg, fields...) }
func (l *slogLogger) Info(msg string, fields ...any)  { l.inner.Info(msg, fields...) }
func (l *slogLogger) Warn(msg string, fields ...any)  { l.inner.Warn(msg, fields...) }
func (l *slogLogger) Error(msg string, fields ...any) { l.inner.Error(msg, fields...) }

func (l *slogLogger) With(fields ...any) Logger {
	return &slogLogger{inner: l.inner.With(fields...)}
}

func (l *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return l.inner.Enabled(ctx, slog.Level(level))
}
