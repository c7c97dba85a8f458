package logging

import (
	"context"

	"go.uber.org/zap"
)

// LogInvocation records one responder invocation. host names the adapter
// that served it (lambda, invoke, http, function).
func LogInvocation(ctx context.Context, host, requestID string, status int) {
	fields := []zap.Field{
		zap.String("invocation.host", host),
		zap.Int("invocation.status", status),
	}
	if requestID != "" {
		fields = append(fields, zap.String("invocation.request_id", requestID))
	}
	helperLogger(ctx).Info("invocation served", fields...)
}
