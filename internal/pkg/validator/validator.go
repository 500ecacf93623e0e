package validator

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Opaque bearer token: non-empty, no whitespace anywhere
	validate.RegisterValidation("token", func(fl validator.FieldLevel) bool {
		token := fl.Field().String()
		if token == "" {
			return false
		}
		return strings.IndexFunc(token, unicode.IsSpace) < 0
	})

	// Required text that is not only whitespace
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fieldErrors := make(map[string]string)
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			fieldErrors[field] = "This field is required"
		case "notblank":
			fieldErrors[field] = "Value must not be blank"
		case "token":
			fieldErrors[field] = "Token must be non-empty and contain no whitespace"
		case "gte":
			fieldErrors[field] = "Value must be at least " + fe.Param()
		case "gt":
			fieldErrors[field] = "Value must be greater than " + fe.Param()
		case "min":
			fieldErrors[field] = "Value is too short (min: " + fe.Param() + ")"
		case "max":
			fieldErrors[field] = "Value is too long (max: " + fe.Param() + ")"
		default:
			fieldErrors[field] = "Invalid value"
		}
	}

	return fieldErrors
}

// Summary renders a field error map as a stable single-line string.
func Summary(fieldErrors map[string]string) string {
	keys := make([]string, 0, len(fieldErrors))
	for k := range fieldErrors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fieldErrors[k])
	}
	return strings.Join(parts, "; ")
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
