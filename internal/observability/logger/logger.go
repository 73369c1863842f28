package logger

import (
	"context"
	"strings"

	"github.com/smallbiznis/netlicensing/pkg/log/ctxlogger"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// ContextWithRequestID stores the inbound request id.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id stored by the HTTP middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// FromContext returns the global logger enriched with request-scoped fields.
func FromContext(ctx context.Context) *zap.Logger {
	return WithContext(ctx, zap.L())
}

// WithContext enriches base with correlation, trace and request fields.
func WithContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	if ctx == nil {
		return base
	}
	log := ctxlogger.WithContext(ctx, base)
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	return log
}

// WithCaller adds the authenticated caller to the logger.
func WithCaller(log *zap.Logger, subject, role string) *zap.Logger {
	if log == nil {
		return nil
	}
	return log.With(
		zap.String("caller", strings.TrimSpace(subject)),
		zap.String("role", strings.TrimSpace(role)),
	)
}
