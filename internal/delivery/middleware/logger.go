package middleware

import (
	"log/slog"
	"time"

	"locator/config"
	deliverycontext "locator/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware logs one line per request
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle logs every request in debug mode and only failed requests otherwise
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			// the error handler has not written the response yet
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			} else if status < 400 {
				status = 500
			}
		}

		if m.debug || status >= 400 {
			m.logRequest(c, start, status, err)
		}

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, status int, err error) {
	req := c.Request()

	fields := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("route", c.Path()),
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
	}

	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}
	if userID, ok := deliverycontext.GetUserID(c); ok {
		fields = append(fields, slog.String("user_id", userID.String()))
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	logLevel := slog.LevelInfo
	if status >= 400 {
		logLevel = slog.LevelWarn
	}
	if status >= 500 {
		logLevel = slog.LevelError
	}

	logger := deliverycontext.GetLoggerOrDefault(req.Context(), m.logger)
	logger.LogAttrs(req.Context(), logLevel, "HTTP Request", fields...)
}
