// Package context carries request-scoped values between the delivery
// middleware and the use cases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID names the request id in both echo.Context and context.Context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger names the request-scoped logger in context.Context.
	KeyLogger ContextKey = "logger"

	// HeaderXRequestID is the header a request id is read from and echoed back in.
	HeaderXRequestID = "X-Request-Id"
)

func lookup[T any](ctx context.Context, key ContextKey) (T, bool) {
	v, ok := ctx.Value(key).(T)

	return v, ok
}

// WithRequestScope stores the request id together with a logger tagged with it
// and returns that logger.
func WithRequestScope(ctx context.Context, requestID string, base *slog.Logger) (context.Context, *slog.Logger) {
	scoped := base.With(slog.String(string(KeyRequestID), requestID))
	ctx = WithLogger(WithRequestID(ctx, requestID), scoped)

	return ctx, scoped
}

// GetRequestID returns the id the middleware put on c, or a fresh one.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext is "" outside a request.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := lookup[string](ctx, KeyRequestID)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := lookup[*slog.Logger](ctx, KeyLogger)

	return logger
}

// GetLoggerOrDefault falls back when ctx carries no request logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
