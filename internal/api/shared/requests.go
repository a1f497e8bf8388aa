package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse
var validate = validator.New()

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates the given struct with the shared validator.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// ValidationFieldErrors converts a validator error into field-keyed
// messages suitable for a 400 payload. Returns nil when err carries no
// field information.
func ValidationFieldErrors(err error) FieldErrors {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	fields := make(FieldErrors, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		name := snakeCase(fieldErr.Field())
		fields[name] = append(fields[name], validationMessage(fieldErr))
	}
	return fields
}

// validationMessage renders one validator failure as a user-facing
// message.
func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return "The two password fields didn't match."
	case "min":
		return "Ensure this value has at least " + fieldErr.Param() + " characters."
	case "max":
		return "Ensure this value is no longer than " + fieldErr.Param() + "."
	case "oneof":
		return "Value must be one of: " + fieldErr.Param() + "."
	default:
		return "This value is invalid."
	}
}

// snakeCase converts an exported struct field name to its snake_case
// JSON form (Password1 -> password1, FirstName -> first_name).
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
