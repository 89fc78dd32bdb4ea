// Package context carries request-scoped values (request id, logger, user id) between
// middleware, handlers and usecases.
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
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"

	// HeaderXRequestID is echoed back on every response.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the request id set by the middleware, or a fresh one for
// responses written before it ran.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.NewString()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns "" when ctx carries no request id.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger returns the request-scoped logger, nil outside a request.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(KeyLogger).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault lets usecases log with request attributes when called from a handler
// and with their own logger from background goroutines.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
