package genres

// CreateGenrePayload is the typed candidate built from the genre form.
type CreateGenrePayload struct {
	Name string `form:"name" mod:"trim,escape" validate:"required"`
}

// DeleteGenrePayload carries the id confirmed on the delete form.
type DeleteGenrePayload struct {
	GenreID string `form:"genreid" mod:"trim,escape" validate:"required"`
}
