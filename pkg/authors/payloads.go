package authors

// CreateAuthorPayload is the typed candidate built from the author form.
// Entities are only ever constructed from a decoded payload, never from raw
// request values.
type CreateAuthorPayload struct {
	FirstName   string `form:"first_name" mod:"trim,escape" validate:"required"`
	FamilyName  string `form:"family_name" mod:"trim,escape" validate:"required,alphanum"`
	DateOfBirth string `form:"date_of_birth" mod:"trim" validate:"date"`
	DateOfDeath string `form:"date_of_death" mod:"trim" validate:"date"`
}

// DeleteAuthorPayload carries the id confirmed on the delete form.
type DeleteAuthorPayload struct {
	AuthorID string `form:"authorid" mod:"trim,escape" validate:"required"`
}
