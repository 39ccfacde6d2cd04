package validation

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Permissive phone grammar: optional leading +, then digits possibly
// separated by spaces, dashes, dots or parentheses. At least seven digits
// must be present.
var (
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-\.\(\)]+$`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

func validPhone(s string) bool {
	return phonePattern.MatchString(s) && len(digitPattern.FindAllString(s, -1)) >= 7
}

// New returns a validator configured for checkout models: decimal.Decimal
// fields participate in numeric comparisons (gt, gte, ...) and the "phone"
// tag checks the phone-number grammar.
func New() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Registration only fails for empty tags or nil funcs, neither applies.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return validPhone(fl.Field().String())
	})

	return v
}

// FieldErrors flattens validator errors into a per-field message map for
// re-display alongside the submitted form.
func FieldErrors(err error) map[string]string {
	messages := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages[""] = err.Error()
		return messages
	}
	for _, e := range validationErrors {
		messages[e.Field()] = fieldMessage(e)
	}
	return messages
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email address"
	case "phone":
		return "Invalid phone number"
	case "min":
		if e.Kind() == reflect.Slice {
			return e.Field() + " must contain at least " + e.Param() + " item(s)"
		}
		return e.Field() + " must be at least " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " failed on the '" + e.Tag() + "' rule"
	}
}
