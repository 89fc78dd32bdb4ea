// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator implements echo.Validator
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their json name
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: v}
}

// Validate validates a bound request struct
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// FieldErrors maps each failed field to the tag it failed, or returns nil for other errors
func FieldErrors(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}

	return fields
}
