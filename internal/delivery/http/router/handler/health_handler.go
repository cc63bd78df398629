// Package handler contains the HTTP handlers of the storefront API.
package handler

import (
	"storefront/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck answers liveness checks.
func HealthCheck(c echo.Context) error {
	return response.OK(c, map[string]string{"status": "ok"})
}
