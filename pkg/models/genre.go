package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID        string    `bun:",pk,nullzero" json:"id"`
	Name      string    `bun:",nullzero" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Checked marks this genre as selected when re-rendering a book form.
	// Never persisted.
	Checked bool `bun:"-" json:"-"`
}

// URL is the canonical path for this genre.
func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID
}
