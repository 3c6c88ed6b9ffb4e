// Package observability provides logging and tracing for the client.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// SetLevel replaces the global logger with one at the given level. Output
// stays on stderr so it never interleaves with command output on stdout.
func SetLevel(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID is the context key carrying the per-request correlation ID.
const CorrelationID LogContextKey = "correlation_id"

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id := ctx.Value(CorrelationID); id != nil {
		return id.(string)
	}
	return ""
}

// RequestLogger provides structured logging for outbound API requests.
type RequestLogger struct {
	component string
	logger    *Logger
}

// NewRequestLogger creates a new RequestLogger for the given component.
func NewRequestLogger(component string) *RequestLogger {
	return &RequestLogger{component: component, logger: GlobalLogger}
}

// LogRequest logs an outbound HTTP request.
func (l *RequestLogger) LogRequest(ctx context.Context, method, path string) {
	l.logger.DebugContext(ctx, "api request",
		slog.String("component", l.component),
		slog.String("method", method),
		slog.String("path", path),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogResponse logs the outcome of an outbound HTTP request.
func (l *RequestLogger) LogResponse(ctx context.Context, method, path string, status int, err error) {
	attrs := []any{
		slog.String("component", l.component),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.logger.ErrorContext(ctx, "api request failed", attrs...)
		return
	}
	l.logger.DebugContext(ctx, "api response", attrs...)
}

// LogAction logs a user-initiated mutation and its outcome. Failures are
// terminal to the one action; the user may retry manually.
func (l *RequestLogger) LogAction(ctx context.Context, action string, err error, fields map[string]interface{}) {
	attrs := []any{
		slog.String("component", l.component),
		slog.String("action", action),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.logger.ErrorContext(ctx, "action failed", attrs...)
		return
	}
	l.logger.InfoContext(ctx, "action completed", attrs...)
}
