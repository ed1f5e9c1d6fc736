package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID          string     `bun:",pk,nullzero" json:"id"`
	FirstName   string     `bun:",nullzero" json:"first_name"`
	FamilyName  string     `bun:",nullzero" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Name returns the author's full name in "FAMILY, First" form.
func (a *Author) Name() string {
	if a.FirstName == "" && a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders the birth and death dates as a single display string.
// Missing dates are left blank, e.g. "1920 - " for a living author.
func (a *Author) Lifespan() string {
	return formatDate(a.DateOfBirth) + " - " + formatDate(a.DateOfDeath)
}

// URL is the canonical path for this author, used as both the redirect
// target after a successful write and the cross-reference in views.
func (a *Author) URL() string {
	return "/catalog/author/" + a.ID
}

const displayDateFormat = "Jan 2, 2006"

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(displayDateFormat)
}
