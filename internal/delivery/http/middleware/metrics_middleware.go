package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestObserver receives one observation per served request.
type RequestObserver interface {
	ObserveRequest(method, path, status string, elapsed time.Duration)
}

// MetricsMiddleware times requests by route template, so path parameters do
// not multiply label values.
type MetricsMiddleware struct {
	observer RequestObserver
}

func NewMetricsMiddleware(observer RequestObserver) *MetricsMiddleware {
	return &MetricsMiddleware{observer: observer}
}

// Handle must run inside the logger middleware, which resolves errors to a status.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			status = statusOf(err)
		}

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		m.observer.ObserveRequest(c.Request().Method, path, strconv.Itoa(status), time.Since(start))

		return err
	}
}
