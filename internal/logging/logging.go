// Package logging provides context-scoped zerolog loggers for the
// carbonnet core. Operational code retrieves its logger with FromContext
// so that request-scoped fields (report ID, institution) attached by a
// caller travel through aggregation and export without plumbing a logger
// parameter everywhere.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithContext returns a child context carrying the given logger.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none was attached. Callers can always log without nil checks.
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

// New builds a logger writing to w at the given level. When console is
// true the human-readable ConsoleWriter is used instead of raw JSON.
func New(w io.Writer, level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// NewStderr is the common CLI setup: a stderr logger at the given level.
func NewStderr(level string, console bool) zerolog.Logger {
	return New(os.Stderr, level, console)
}
