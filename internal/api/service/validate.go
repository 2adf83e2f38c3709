package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

var phoneRe = regexp.MustCompile(`^(?:\+88|0088)?01[3-9]\d{8}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("bdphone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	// Usernames share the login field with phone numbers.
	_ = v.RegisterValidation("notphone", func(fl validator.FieldLevel) bool {
		return !phoneRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return passwordStrong(fl.Field().String())
	})

	return v
}

// passwordStrong enforces the password policy: 8 to 128 characters with
// at least one upper case letter, lower case letter, digit and symbol.
func passwordStrong(p string) bool {
	if n := len([]rune(p)); n < minPasswordLength || n > maxPasswordLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// validateInput checks every constraint on in and returns a validation
// *Error listing all violated fields, or nil.
func validateInput(in any) *Error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return validationError("Invalid request", nil)
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := details[fe.Field()]; !seen {
			details[fe.Field()] = reason(fe)
		}
	}
	return newValidationError(details, verrs[0].Field())
}

// newValidationError picks the headline message: the single reason when
// there is one violation, a summary otherwise.
func newValidationError(details map[string]string, first string) *Error {
	if len(details) == 1 {
		return validationError(details[first], details)
	}
	return validationError("Please correct the highlighted fields", details)
}

func reason(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email address. Please check the format!"
	case "bdphone":
		return "Invalid phone number. Use a valid Bangladeshi number."
	case "notphone":
		return field + " cannot be a phone number"
	case "strongpassword":
		return "Password must be 8 to 128 characters and include upper and lower case letters, a number and a symbol."
	case "alphanum":
		return field + " may only contain letters and numbers"
	case "ne":
		return field + " cannot be " + fe.Param()
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "len":
		return field + " must be exactly " + fe.Param() + " characters"
	case "numeric":
		return field + " must be numeric"
	case "url":
		return field + " must be a valid URL"
	}
	return field + " is invalid"
}
