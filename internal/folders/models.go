package folders

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Folder groups documents under a human-facing name. Slug is unique and
// either supplied explicitly or derived from the name.
type Folder struct {
	bun.BaseModel `bun:"table:folders,alias:f"`

	ID        uuid.UUID  `bun:",pk,type:uuid"                   json:"id"`
	Name      string     `bun:"name,notnull"                    json:"name"`
	Slug      string     `bun:"slug,notnull"                    json:"slug"`
	ParentID  *uuid.UUID `bun:"parent_id,type:uuid,nullzero"    json:"parent_id,omitempty"`
	SortOrder int        `bun:"sort_order,notnull,default:0"    json:"sort_order"`
	CreatedAt time.Time  `bun:"created_at,notnull"              json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,notnull"              json:"updated_at"`
}

// Tree is a folder with its resolved children, as returned by the public
// folder listing.
type Tree struct {
	Folder
	Children []*Tree `json:"children"`
}
