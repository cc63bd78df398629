// Package validator adapts the storefront struct validator to echo.
package validator

import (
	"strings"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/infra/validation"

	"github.com/go-playground/validator/v10"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

func New() *EchoValidator {
	return &EchoValidator{validate: validation.New()}
}

// Validate reports failures as VALIDATION_FAILED with one "field: rule" per violation.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		if fields := validation.FieldErrors(err); len(fields) > 0 {
			return domainerrors.ErrValidationFailed.WithDetails(strings.Join(fields, "; "))
		}

		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
