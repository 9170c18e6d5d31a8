package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey contextKey = "logger"
	// RequestIDKey is the context key for the request ID
	RequestIDKey contextKey = "request_id"
	// SedeIDKey is the context key for the branch (sede) scoping a request
	SedeIDKey contextKey = "sede_id"
)

// WithContext stores a logger in the context
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from the context, or a no-op logger when
// none was stored
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID adds the request ID to the context and returns a logger
// enriched with it
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithSedeID adds the sede ID to the context and returns a logger enriched
// with it. Delivery operations are always scoped to a sede, so log lines
// carry it for correlation.
func WithSedeID(ctx context.Context, logger *zap.Logger, sedeID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, SedeIDKey, sedeID)
	enriched := logger.With(zap.String("sede_id", sedeID))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves the request ID from the context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetSedeID retrieves the sede ID from the context
func GetSedeID(ctx context.Context) string {
	if sedeID, ok := ctx.Value(SedeIDKey).(string); ok {
		return sedeID
	}
	return ""
}
