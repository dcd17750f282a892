package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestLogger 把每個請求寫成一筆 slog 紀錄
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"remote_ip", v.RemoteIP,
			}
			if v.RequestID != "" {
				attrs = append(attrs, "request_id", v.RequestID)
			}
			if sid, ok := c.Get(ContextSessionKey).(string); ok {
				attrs = append(attrs, "session_id", sid)
			}
			ctx := c.Request().Context()
			if v.Error != nil {
				logger.ErrorContext(ctx, "request", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			logger.InfoContext(ctx, "request", attrs...)
			return nil
		},
	})
}
