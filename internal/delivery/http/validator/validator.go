// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "herbarium/internal/domain/errors"
	"herbarium/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// CustomValidator wraps a validator instance for struct tag validation.
type CustomValidator struct {
	validate *playground.Validate
}

// New creates the validator used by the Echo server.
func New() *CustomValidator {
	return &CustomValidator{
		validate: playground.New(),
	}
}

// Validate checks the struct tags on i. Violations surface as the domain
// validation error so the central error handler maps them to 400.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	return nil
}
