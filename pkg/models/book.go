package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        string    `bun:",pk,nullzero" json:"id"`
	AuthorID  string    `bun:",nullzero" json:"author_id"`
	Author    *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Title     string    `bun:",nullzero" json:"title"`
	Summary   string    `bun:",nullzero" json:"summary"`
	ISBN      string    `bun:"isbn,nullzero" json:"isbn"`
	Genres    []*Genre  `bun:"m2m:book_genres,join:Book=Genre" json:"genres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL is the canonical path for this book.
func (b *Book) URL() string {
	return "/catalog/book/" + b.ID
}

// GenreIDs returns the ids of the book's genres in stored order.
func (b *Book) GenreIDs() []string {
	ids := make([]string, 0, len(b.Genres))
	for _, g := range b.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// BookGenre is the join row between books and genres. Sequence preserves
// the order the genres were submitted in.
type BookGenre struct {
	bun.BaseModel `bun:"table:book_genres,alias:bg"`

	BookID   string `bun:",pk" json:"book_id"`
	Book     *Book  `bun:"rel:belongs-to,join:book_id=id" json:"-"`
	GenreID  string `bun:",pk" json:"genre_id"`
	Genre    *Genre `bun:"rel:belongs-to,join:genre_id=id" json:"-"`
	Sequence int    `bun:",nullzero" json:"sequence"`
}

// RegisterModels registers the many-to-many join models with bun. It must
// be called once per bun.DB before any query that traverses Book.Genres.
func RegisterModels(db *bun.DB) {
	db.RegisterModel((*BookGenre)(nil))
}
