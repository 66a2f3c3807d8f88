package ports

import (
	"context"

	"github.com/google/uuid"
)

// Logger is the structured logging contract shared by the application and
// infrastructure layers. Calls take alternating key/value pairs, must be safe
// for concurrent use, and enrich entries with the correlation id carried by ctx.
// Common fields:
//   - correlation_id (UUIDv4, generated at CLI entry point)
//   - component (loader, generator, writer, ...)
//   - path / destination / sessions / total / failures
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, msg string, fields ...interface{})
	Error(ctx context.Context, msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

type correlationIDKey struct{}

// WithCorrelationID attaches the provided correlation ID to the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID extracts a correlation ID from context, returning an empty
// string when none has been set.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID produces a new UUIDv4 string. CLI entry-points invoke
// this once per command execution.
func GenerateCorrelationID() string {
	return uuid.NewString()
}
