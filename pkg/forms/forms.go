package forms

import (
	"context"
	"html"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
	"github.com/saif55582/library/pkg/errcodes"
)

// Pipeline decodes raw form values into a typed candidate payload,
// normalizes it (trim, then escape), applies struct defaults, and validates
// it. Validation failures are collected and returned as data, never as an
// error: the caller decides whether to re-render the form or persist. The
// pipeline performs no store access.
type Pipeline struct {
	decoder  *schema.Decoder
	conform  *mold.Transformer
	validate *validator.Validate
}

// New initializes a Pipeline with the catalog's modifiers and validation
// functions registered.
func New() (*Pipeline, error) {
	decoder := schema.NewDecoder()
	decoder.SetAliasTag("form")
	decoder.IgnoreUnknownKeys(true)

	conform := modifiers.New()
	conform.Register("escape", escapeModifier)

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("date", dateValidator); err != nil {
		return nil, errors.WithStack(err)
	}

	return &Pipeline{decoder, conform, validate}, nil
}

// Decode runs the full normalize-then-validate pipeline against dst. The
// returned slice holds every field-level failure in field declaration
// order; it is empty when the candidate is acceptable. A non-nil error
// means the input could not be processed at all, not that it is invalid.
func (p *Pipeline) Decode(ctx context.Context, dst interface{}, values url.Values) ([]FieldError, error) {
	if err := p.decoder.Decode(dst, values); err != nil {
		return nil, errcodes.MalformedPayload()
	}

	if err := p.conform.Struct(ctx, dst); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := defaults.Set(dst); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := p.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, errors.WithStack(err)
		}
		fieldErrs := make([]FieldError, 0, len(verrs))
		for _, verr := range verrs {
			fieldErrs = append(fieldErrs, newFieldError(verr))
		}
		return fieldErrs, nil
	}

	return nil, nil
}

// escapeModifier HTML-escapes markup-significant characters in string
// fields. Input is unescaped first so that re-running the pipeline over an
// already-normalized value is a no-op.
func escapeModifier(_ context.Context, fl mold.FieldLevel) error {
	if fl.Field().Kind() == reflect.String {
		fl.Field().SetString(EscapeString(fl.Field().String()))
	}
	return nil
}

// EscapeString normalizes a single string the way the pipeline does.
// Idempotent: EscapeString(EscapeString(s)) == EscapeString(s).
func EscapeString(s string) string {
	return html.EscapeString(html.UnescapeString(s))
}

const dateFormat = "2006-01-02"

// ParseDate converts a validated optional date field to a time. The empty
// string maps to nil rather than the zero time.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &t, nil
}
