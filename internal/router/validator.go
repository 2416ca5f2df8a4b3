package router

// validator.go plugs go-playground/validator into Echo so handlers can
// call c.Validate on bound request DTOs.

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts a validator.Validate instance to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a Validator ready to be assigned to
// echo.Echo.Validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}
	return nil
}
