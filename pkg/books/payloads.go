package books

import "github.com/samber/lo"

// BookPayload is the typed candidate built from the book form. Create and
// update share it: the book form resubmits every field.
type BookPayload struct {
	Title    string   `form:"title" mod:"trim,escape" validate:"required"`
	AuthorID string   `form:"author" mod:"trim,escape" validate:"required"`
	Summary  string   `form:"summary" mod:"trim,escape" validate:"required"`
	ISBN     string   `form:"isbn" mod:"trim,escape" validate:"required"`
	Genres   []string `form:"genre" mod:"dive,trim,escape"`
}

// GenreSet returns the candidate's genre references in submission order
// with exact-duplicate ids removed. A single submitted value decodes as a
// one-element set; an absent field as an empty one.
func (p *BookPayload) GenreSet() []string {
	return lo.Uniq(p.Genres)
}

// DeleteBookPayload carries the id confirmed on the delete form.
type DeleteBookPayload struct {
	BookID string `form:"bookid" mod:"trim,escape" validate:"required"`
}
