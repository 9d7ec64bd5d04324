package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs tag-based validation and returns a field→message map,
// or nil when the value is valid.
func ValidateStruct(data interface{}) map[string]any {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errs := make(map[string]any)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrors {
			errs[fieldErr.Field()] = simpleMessage(fieldErr)
		}
	}
	return errs
}

func simpleMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum is %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "numeric":
		return "Must contain only digits"
	case "gte":
		return fmt.Sprintf("Must be at least %s", err.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(err.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}
