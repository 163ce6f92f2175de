package searchctx

import (
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/searchctx/wire"
)

// Logger wraps slog.Logger with searchctx-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithVersion adds the peer protocol version to the logger.
func (l *Logger) WithVersion(v wire.Version) *Logger {
	return &Logger{
		Logger: l.Logger.With("protocol", v.String()),
	}
}

// LogSessionDropped logs that a session id was left off the wire because the
// peer predates session ids.
func (l *Logger) LogSessionDropped(id *ContextID, version, since wire.Version) {
	l.Debug("session id omitted for legacy peer",
		"context_id", id.String(),
		"protocol", version.String(),
		"session_id_since", since.String(),
	)
}

// LogEncode logs a failed encode.
func (l *Logger) LogEncode(id *ContextID, version wire.Version, err error) {
	if err == nil {
		return
	}
	l.Error("encode context id failed",
		"context_id", id.String(),
		"protocol", version.String(),
		"error", err,
	)
}

// LogDecode logs a decode operation.
func (l *Logger) LogDecode(id *ContextID, version wire.Version, err error) {
	if err != nil {
		l.Error("decode context id failed",
			"protocol", version.String(),
			"error", err,
		)
	} else {
		l.Debug("decode context id completed",
			"context_id", id.String(),
			"protocol", version.String(),
		)
	}
}
