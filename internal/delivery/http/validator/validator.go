// Package validator adapts go-playground/validator to Echo's Validator hook.
package validator

import (
	domainerrors "tasknest/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator validates bound request structs against their `validate` tags.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates a RequestValidator.
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Tag violations surface as the generic
// validation failure so field-level internals never leak verbatim.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
