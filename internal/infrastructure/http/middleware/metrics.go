package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-recovery/internal/infrastructure/metrics"
)

// Prometheus records request duration by route template
func Prometheus() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Render now so the recorded status is the one sent
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			metrics.ObserveHTTP(c.Request().Method, path, c.Response().Status, time.Since(start))
			return nil
		}
	}
}
