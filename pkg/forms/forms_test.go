package forms

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	FirstName   string   `form:"first_name" mod:"trim,escape" validate:"required"`
	FamilyName  string   `form:"family_name" mod:"trim,escape" validate:"required,alphanum"`
	DateOfBirth string   `form:"date_of_birth" mod:"trim" validate:"date"`
	Status      string   `form:"status" mod:"trim" default:"Maintenance" validate:"oneof=Available Maintenance Loaned Reserved"`
	Genres      []string `form:"genre" mod:"dive,trim,escape"`
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	p, err := New()
	require.NoError(t, err)
	return p
}

func TestPipelineDecode_CollectsEveryFailure(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	payload := testPayload{}
	fieldErrs, err := p.Decode(context.Background(), &payload, url.Values{
		"date_of_birth": {"13/06/1920"},
	})
	require.NoError(t, err)

	// Both missing fields and the malformed date are reported together.
	require.Len(t, fieldErrs, 3)
	assert.Equal(t, "first_name", fieldErrs[0].Field)
	assert.Equal(t, CodeRequiredFieldMissing, fieldErrs[0].Code)
	assert.Equal(t, `"first_name" is required`, fieldErrs[0].Message)
	assert.Equal(t, "family_name", fieldErrs[1].Field)
	assert.Equal(t, CodeRequiredFieldMissing, fieldErrs[1].Code)
	assert.Equal(t, "date_of_birth", fieldErrs[2].Field)
	assert.Equal(t, CodeInvalidDate, fieldErrs[2].Code)
}

func TestPipelineDecode_AlphanumRejectsPunctuation(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	payload := testPayload{}
	fieldErrs, err := p.Decode(context.Background(), &payload, url.Values{
		"first_name":  {"Patrick"},
		"family_name": {"O'Brien!"},
	})
	require.NoError(t, err)

	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "family_name", fieldErrs[0].Field)
	assert.Equal(t, CodeInvalidFormat, fieldErrs[0].Code)
	assert.Equal(t, `"family_name" must contain only letters and numbers`, fieldErrs[0].Message)
}

func TestPipelineDecode_ValidCandidateHasNoErrors(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	payload := testPayload{}
	fieldErrs, err := p.Decode(context.Background(), &payload, url.Values{
		"first_name":    {"  Patrick  "},
		"family_name":   {"Rothfuss"},
		"date_of_birth": {"1973-06-06"},
	})
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)

	assert.Equal(t, "Patrick", payload.FirstName)
	assert.Equal(t, "1973-06-06", payload.DateOfBirth)
	// The default applies when the form omits the field entirely.
	assert.Equal(t, "Maintenance", payload.Status)
}

func TestPipelineDecode_RejectsNonCalendarDates(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	// Well-formed but impossible dates must fail validation here, not blow
	// up later when the handler parses the accepted value.
	for _, value := range []string{"2021-02-31", "2021-00-10", "2021-04-00", "2021-13-01"} {
		t.Run(value, func(t *testing.T) {
			payload := testPayload{}
			fieldErrs, err := p.Decode(context.Background(), &payload, url.Values{
				"first_name":    {"Patrick"},
				"family_name":   {"Rothfuss"},
				"date_of_birth": {value},
			})
			require.NoError(t, err)

			require.Len(t, fieldErrs, 1)
			assert.Equal(t, "date_of_birth", fieldErrs[0].Field)
			assert.Equal(t, CodeInvalidDate, fieldErrs[0].Code)

			_, parseErr := ParseDate(value)
			assert.Error(t, parseErr)
		})
	}
}

func TestPipelineDecode_AcceptsLeapDay(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	payload := testPayload{}
	fieldErrs, err := p.Decode(context.Background(), &payload, url.Values{
		"first_name":    {"Patrick"},
		"family_name":   {"Rothfuss"},
		"date_of_birth": {"2020-02-29"},
	})
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)

	parsed, err := ParseDate(payload.DateOfBirth)
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, time.February, parsed.Month())
}

func TestPipelineDecode_EmptyOptionalDateIsValid(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	payload := testPayload{}
	fieldErrs, err := p.Decode(context.Background(), &payload, url.Values{
		"first_name":    {"Patrick"},
		"family_name":   {"Rothfuss"},
		"date_of_birth": {""},
	})
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)
}

func TestPipelineDecode_EscapesMarkup(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	payload := testPayload{}
	fieldErrs, err := p.Decode(context.Background(), &payload, url.Values{
		"first_name":  {" <b>Bob</b> "},
		"family_name": {"Smith"},
	})
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)

	assert.Equal(t, "&lt;b&gt;Bob&lt;/b&gt;", payload.FirstName)
}

func TestPipelineDecode_MultiValueField(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	tests := []struct {
		name     string
		values   []string
		expected []string
	}{
		{"absent", nil, nil},
		{"single", []string{"g1"}, []string{"g1"}},
		{"multiple with whitespace", []string{" g1 ", "g2"}, []string{"g1", "g2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{
				"first_name":  {"Patrick"},
				"family_name": {"Rothfuss"},
			}
			if tt.values != nil {
				values["genre"] = tt.values
			}

			payload := testPayload{}
			fieldErrs, err := p.Decode(context.Background(), &payload, values)
			require.NoError(t, err)
			assert.Empty(t, fieldErrs)
			assert.Equal(t, tt.expected, payload.Genres)
		})
	}
}

func TestPipelineDecode_InvalidStatus(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	payload := testPayload{}
	fieldErrs, err := p.Decode(context.Background(), &payload, url.Values{
		"first_name":  {"Patrick"},
		"family_name": {"Rothfuss"},
		"status":      {"Lost"},
	})
	require.NoError(t, err)

	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "status", fieldErrs[0].Field)
	assert.Equal(t, CodeInvalidFormat, fieldErrs[0].Code)
	assert.Equal(t, `"status" must be one of the following: "Available", "Maintenance", "Loaned", "Reserved"`, fieldErrs[0].Message)
}

func TestEscapeString_Idempotent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"a < b & c", "a &lt; b &amp; c"},
		{"a &lt; b &amp; c", "a &lt; b &amp; c"},
		{`<script>alert("x")</script>`, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, EscapeString(tt.input))
		assert.Equal(t, EscapeString(tt.input), EscapeString(EscapeString(tt.input)))
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	parsed, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	parsed, err = ParseDate("1920-06-13")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, 1920, parsed.Year())

	_, err = ParseDate("not-a-date")
	require.Error(t, err)
}
