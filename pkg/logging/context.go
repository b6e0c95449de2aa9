package logging

import (
	"context"

	"go.uber.org/zap"
)

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request id carried by ctx, or "".
func RequestID(ctx context.Context) (requestID string) {
	requestID, _ = ctx.Value(requestIDKey{}).(string)
	return requestID
}

// FromContext returns logger tagged with the request id carried by ctx.
func FromContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		return logger
	}
	return logger.With(zap.String("request_id", requestID))
}
