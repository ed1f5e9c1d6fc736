package bookinstances

// CreateBookInstancePayload is the typed candidate built from the copy
// form. Status falls back to Maintenance when the form omits it.
type CreateBookInstancePayload struct {
	BookID  string `form:"book" mod:"trim,escape" validate:"required"`
	Imprint string `form:"imprint" mod:"trim,escape" validate:"required"`
	Status  string `form:"status" mod:"trim,escape" default:"Maintenance" validate:"oneof=Available Maintenance Loaned Reserved"`
	DueBack string `form:"due_back" mod:"trim" validate:"date"`
}

// DeleteBookInstancePayload carries the id confirmed on the delete form.
type DeleteBookInstancePayload struct {
	BookInstanceID string `form:"bookinstanceid" mod:"trim,escape" validate:"required"`
}
