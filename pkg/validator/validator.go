package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the project's custom tags
func New() *CustomValidator {
	v := validator.New()
	// hexcolor6 accepts "#RRGGBB" only; the built-in hexcolor also allows "#RGB"
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return IsHexColor(fl.Field().String())
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// IsHexColor reports whether s is a six digit "#RRGGBB" colour
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}
