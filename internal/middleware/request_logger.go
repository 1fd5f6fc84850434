package middleware

import (
	"time"

	"rfmInsight/pkg/logger"

	"github.com/labstack/echo/v4"
)

func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			logger.Info("Request handled",
				"method", req.Method,
				"path", c.Path(),
				"status", res.Status,
				"latency_ms", float64(time.Since(start).Microseconds())/1000,
				"request_id", res.Header().Get(echo.HeaderXRequestID),
			)

			return nil
		}
	}
}
