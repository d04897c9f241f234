// Package notes implements quick notes: short, folder-less entries that sit
// alongside documents on the mixed timeline until archived.
package notes

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Note is a single quick note.
type Note struct {
	bun.BaseModel `bun:"table:quick_notes,alias:n"`

	ID         uuid.UUID `bun:",pk,type:uuid"              json:"id"`
	Content    string    `bun:"content,notnull"            json:"content"`
	IsArchived bool      `bun:"is_archived,notnull"        json:"is_archived"`
	CreatedAt  time.Time `bun:"created_at,notnull"         json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"         json:"updated_at"`
}

// Page is one page of the note listing.
type Page struct {
	Items []*Note `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}
