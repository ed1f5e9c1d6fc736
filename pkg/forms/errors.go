package forms

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error codes carried on collected field errors. These flow into the
// create/update decision as data and are never raised as Go errors.
const (
	CodeRequiredFieldMissing = "required_field_missing"
	CodeInvalidFormat        = "invalid_format"
	CodeInvalidDate          = "invalid_date"
)

// FieldError describes a single validation failure on one form field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newFieldError(err validator.FieldError) FieldError {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return FieldError{
			Field:   field,
			Code:    CodeRequiredFieldMissing,
			Message: fmt.Sprintf("%q is required", field),
		}
	case "alphanum":
		return FieldError{
			Field:   field,
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("%q must contain only letters and numbers", field),
		}
	case "date":
		return FieldError{
			Field:   field,
			Code:    CodeInvalidDate,
			Message: fmt.Sprintf("%q should be in the format of YYYY-MM-DD", field),
		}
	case "oneof":
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return FieldError{
			Field:   field,
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", ")),
		}
	default:
		return FieldError{
			Field:   field,
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("%q is invalid", field),
		}
	}
}
