package colourmanager

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for theme and colour input.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// "#rrggbb" only: hexcolor alone also accepts #rgb and #rrggbbaa.
	validate.RegisterAlias("csscolor", "len=7,hexcolor")

	// Use JSON tag names in error messages instead of struct field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validator returns the shared validator so callers can check their own
// structs with the same tags and aliases.
func Validator() *validator.Validate {
	return validate
}

// ValidateCSS checks that s is exactly "#rrggbb".
// colour.FromCSS trusts its input, so anything user supplied goes through here first.
func ValidateCSS(s string) error {
	if err := validate.Var(s, "required,csscolor"); err != nil {
		return fmt.Errorf("invalid colour %q: must be #rrggbb", s)
	}
	return nil
}

// Validate checks every set field of the theme.
func (t Theme) Validate() error {
	return ValidationErrors(validate.Struct(t))
}

// ValidationErrors converts a validator error into one joined error with a
// readable message per field. A nil input returns nil.
func ValidationErrors(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := make([]error, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, fmt.Errorf("%s %s (got %v)", e.Field(), formatValidationMessage(e), e.Value()))
	}
	return errors.Join(errs...)
}

// formatValidationMessage creates a human-readable message from a validator error.
func formatValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "csscolor":
		return "must be a #rrggbb colour"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
