package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NotBlankTag is the binding tag of the rule rejecting whitespace-only strings
const NotBlankTag = "notblank"

// IsBlank reports whether s is empty once surrounding whitespace is removed.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// notBlank fails string fields that hold only whitespace. Other kinds pass.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return !IsBlank(field.String())
}

// RegisterRules adds the custom rules to v
func RegisterRules(v *validator.Validate) error {
	return v.RegisterValidation(NotBlankTag, notBlank)
}
