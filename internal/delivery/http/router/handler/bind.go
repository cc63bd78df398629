package handler

import (
	domainerrors "storefront/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// bind reads the request body into req. Failures are reported as VALIDATION_FAILED.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := bind(c, req); err != nil {
		return err
	}

	return c.Validate(req)
}
