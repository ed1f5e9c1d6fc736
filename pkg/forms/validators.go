package forms

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// dateValidator ensures the value parses as a real calendar date in
// YYYY-MM-DD form, or is the empty string. Optional date fields stay valid
// when left blank; pair with `required` when the date must be present.
// Anything this accepts, ParseDate parses.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(dateFormat, value)
	return err == nil
}
