// Package documents is the heart of the publishing backend: metadata rows
// live in sqlite, raw Markdown bodies live in the blob store under
// "documents/<slug>.md". The slug is the unique public key; renaming a slug
// moves the blob along with it.
package documents

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-press/internal/folders"
)

// Document is the metadata row for one published (or draft) page.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID             uuid.UUID  `bun:",pk,type:uuid"                json:"id"`
	Title          string     `bun:"title,notnull"                json:"title"`
	Slug           string     `bun:"slug,notnull"                 json:"slug"`
	Summary        string     `bun:"summary,nullzero"             json:"summary,omitempty"`
	FolderID       *uuid.UUID `bun:"folder_id,type:uuid,nullzero" json:"folder_id,omitempty"`
	IsPublished    bool       `bun:"is_published,notnull"         json:"is_published"`
	IsPrivate      bool       `bun:"is_private,notnull"           json:"is_private"`
	AccessCodeHash string     `bun:"access_code_hash,nullzero"    json:"-"`
	PublishedAt    *time.Time `bun:"published_at,nullzero"        json:"published_at,omitempty"`
	CreatedAt      time.Time  `bun:"created_at,notnull"           json:"created_at"`
	UpdatedAt      time.Time  `bun:"updated_at,notnull"           json:"updated_at"`

	Folder *folders.Folder `bun:"rel:belongs-to,join:folder_id=id" json:"folder,omitempty"`
}

// FolderRef is the folder shape embedded in public document payloads.
type FolderRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Detail is the public view of a document. Content is withheld while the
// document is locked; ContentHTML carries the rendered body when present.
type Detail struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"content_html,omitempty"`
	IsPrivate   bool       `json:"is_private"`
	IsLocked    bool       `json:"is_locked"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Folder      *FolderRef `json:"folder,omitempty"`
}

// Page is one page of the admin document listing.
type Page struct {
	Items []*Document `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func folderRef(f *folders.Folder) *FolderRef {
	if f == nil {
		return nil
	}
	return &FolderRef{ID: f.ID, Name: f.Name, Slug: f.Slug}
}
