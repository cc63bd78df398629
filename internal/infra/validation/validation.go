// Package validation builds the struct validator shared by the use cases and the HTTP layer.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"storefront/internal/errors"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals
var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// New returns a validator with the storefront's custom tags registered:
//
//	phone10     exactly 10 digits
//	cardnumber  13 to 19 digits once spaces are removed
//	cardexpiry  MM/YY
//	looseemail  the newsletter's something@something.tld check
//
// Field names in errors come from the json tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	mustRegister(v, "phone10", func(fl validator.FieldLevel) bool {
		return isDigits(fl.Field().String(), 10, 10)
	})
	mustRegister(v, "cardnumber", func(fl validator.FieldLevel) bool {
		return isDigits(strings.ReplaceAll(fl.Field().String(), " ", ""), 13, 19)
	})
	mustRegister(v, "cardexpiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "looseemail", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})

	return v
}

// IsEmail applies the storefront's permissive email pattern.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// FieldErrors flattens validator errors into "field: rule" strings.
func FieldErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Namespace()+": "+fe.Tag())
	}

	return out
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func isDigits(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
