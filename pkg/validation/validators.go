package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Permissive phone pattern: digits, hyphen, plus, space, parentheses.
// Accepts both 090-1234-5678 and +81 90 (1234) 5678 style input.
var phoneRegex = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// RegisterValidators registers the custom validators on v. Call this on
// gin's binding engine at startup and on any standalone instance.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("phone_chars", PhoneChars)
}

// New returns a standalone validator configured the same way gin's binding
// engine is: binding tags, custom validators registered.
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterValidators(v)
	return v
}

// PhoneChars validates that a string contains only phone number characters.
func PhoneChars(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // required is a separate rule
	}
	return phoneRegex.MatchString(val)
}
