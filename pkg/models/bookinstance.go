package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	StatusAvailable   = "Available"
	StatusMaintenance = "Maintenance"
	StatusLoaned      = "Loaned"
	StatusReserved    = "Reserved"
)

// Statuses lists the valid BookInstance statuses in form-display order.
var Statuses = []string{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

type BookInstance struct {
	bun.BaseModel `bun:"table:book_instances,alias:bi"`

	ID        string    `bun:",pk,nullzero" json:"id"`
	BookID    string    `bun:",nullzero" json:"book_id"`
	Book      *Book     `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Imprint   string    `bun:",nullzero" json:"imprint"`
	Status    string    `bun:",nullzero" json:"status"`
	DueBack   time.Time `json:"due_back"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL is the canonical path for this copy.
func (bi *BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID
}

// DueBackDisplay renders the due date for list and detail screens.
func (bi *BookInstance) DueBackDisplay() string {
	return bi.DueBack.Format(displayDateFormat)
}
