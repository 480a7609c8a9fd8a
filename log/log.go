// Package log provides structured logging for the tooling that sits
// around the VOLE commitment core (cmd/volebench and any future driver).
// The commitment core itself never logs; every line a program using this
// package emits is already scoped to a run, so two concurrent
// commit/decommit cycles against different parameter sets or different
// trees within the same run never interleave into an ambiguous stream.
// It wraps Go's log/slog and adds two child-logger constructors shaped
// around this module's own taxonomy: a parameter-set instance and a
// single seed tree within that instance's tau trees.
package log

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with run-scoped context: which instance,
// which tree, which run index a line belongs to.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger is the process-wide logger used by the package-level
// convenience functions.
var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler. This
// is useful for testing or for writing to a custom destination.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute. This
// is the primary way a program built on this package (e.g. volebench)
// obtains its own contextual logger before narrowing further with
// Instance or Tree.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// Instance returns a child logger scoped to one named parameter set,
// tagging every subsequent line with "instance", "lambda", and "tau" so
// runs against different FAEST instances in the same process never get
// attributed to the wrong one.
func (l *Logger) Instance(name string, lambda, tau int) *Logger {
	return &Logger{inner: l.inner.With("instance", name, "lambda", lambda, "tau", tau)}
}

// Tree returns a child logger scoped to one of an instance's tau seed
// trees, tagging lines with "tree" so per-tree commit/decommit timing
// can be told apart within a single run.
func (l *Logger) Tree(index int) *Logger {
	return &Logger{inner: l.inner.With("tree", index)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// ---------------------------------------------------------------------------
// Package-level convenience functions -- delegate to defaultLogger.
// ---------------------------------------------------------------------------

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
