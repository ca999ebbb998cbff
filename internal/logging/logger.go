// Package logging provides structured logging configuration using log/slog.
//
// Request IDs from chi's RequestID middleware and the wizard session id are
// carried on the context and attached to every entry logged through
// FromContext.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey struct{}

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stdout, level, format))
}

// New builds a logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level. Unknown values are
// info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSession stores the wizard session id for FromContext.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, ctxKey{}, session)
}

// Session returns the session id stored by WithSession.
func Session(ctx context.Context) string {
	s, _ := ctx.Value(ctxKey{}).(string)
	return s
}

// FromContext returns the default logger with request_id and session added
// when the context carries them.
//
// Usage:
//
//	func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.FromContext(r.Context())
//	    logger.Info("import received", "file", header.Filename)
//	}
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if s := Session(ctx); s != "" {
		logger = logger.With("session", s)
	}

	return logger
}

// WithFields returns a context logger with additional structured fields.
//
//	importLogger := logging.WithFields(ctx, "import_id", id, "file", name)
//	importLogger.Info("import completed", "rows", rows)
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
