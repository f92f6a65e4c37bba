package durafile

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with durafile-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithScenario adds a scenario ID field to the logger.
func (l *Logger) WithScenario(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("scenario", id),
	}
}

// LogFlush logs a buffer-to-cache flush.
func (l *Logger) LogFlush(path string, bytes int64, err error) {
	if err != nil {
		l.Error("flush failed",
			"path", path,
			"buffered_bytes", bytes,
			"error", err,
		)
	} else {
		l.Debug("flush completed",
			"path", path,
			"level", LevelCacheCommitted.String(),
		)
	}
}

// LogCommit logs a commit attempt and the level transition it produced.
func (l *Logger) LogCommit(path string, requested, reached DurabilityLevel, err error) {
	if err != nil {
		l.Error("commit failed",
			"path", path,
			"requested", requested.String(),
			"reached", reached.String(),
			"error", err,
		)
	} else {
		l.Info("commit completed",
			"path", path,
			"level", reached.String(),
		)
	}
}

// LogClose logs a target close. Close only guarantees the cache tier.
func (l *Logger) LogClose(path string, level DurabilityLevel, err error) {
	if err != nil {
		l.Error("close failed",
			"path", path,
			"error", err,
		)
	} else {
		l.Debug("target closed",
			"path", path,
			"level", level.String(),
		)
	}
}
