// Package folders manages the folder hierarchy documents are organised
// into. Folders are flat rows with an optional parent reference; the tree
// shape is assembled in memory on read.
package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/slug"
)

// Service exposes folder CRUD backed by bun.
type Service struct {
	db      *bun.DB
	logger  logging.Logger
	now     func() time.Time
	newID   func() uuid.UUID
	newSlug func(name string) string
}

// Option mutates the service configuration.
type Option func(*Service)

// WithLogger attaches a logger (defaults to no-op).
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source. Test seam.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSlugGenerator overrides how slugs are derived from names when no
// explicit slug is supplied. Test seam; defaults to slug.WithSuffix.
func WithSlugGenerator(gen func(name string) string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newSlug = gen
		}
	}
}

// NewService builds a folder service.
func NewService(db *bun.DB, opts ...Option) *Service {
	svc := &Service{
		db:      db,
		logger:  logging.NoOp(),
		now:     time.Now,
		newID:   uuid.New,
		newSlug: slug.WithSuffix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// CreateInput carries the attributes accepted when creating a folder.
type CreateInput struct {
	Name      string     `json:"name"`
	Slug      string     `json:"slug,omitempty"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder int        `json:"sort_order,omitempty"`
}

// Validate implements the request contract: name is mandatory.
func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 120)),
	)
}

// UpdateInput carries partial folder updates; nil fields are left untouched.
type UpdateInput struct {
	Name      *string    `json:"name,omitempty"`
	Slug      *string    `json:"slug,omitempty"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder *int       `json:"sort_order,omitempty"`
}

// List returns every folder ordered by sort order, then name.
func (s *Service) List(ctx context.Context) ([]*Folder, error) {
	var items []*Folder
	err := s.db.NewSelect().
		Model(&items).
		OrderExpr("sort_order, name").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("folders: list: %w", err)
	}
	return items, nil
}

// Tree returns the folder hierarchy rooted at folders without a parent.
func (s *Service) Tree(ctx context.Context) ([]*Tree, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return buildTree(items, nil), nil
}

func buildTree(items []*Folder, parentID *uuid.UUID) []*Tree {
	out := []*Tree{}
	for _, folder := range items {
		if !sameParent(folder.ParentID, parentID) {
			continue
		}
		id := folder.ID
		out = append(out, &Tree{
			Folder:   *folder,
			Children: buildTree(items, &id),
		})
	}
	return out
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// GetByID fetches a single folder.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Folder, error) {
	folder := new(Folder)
	err := s.db.NewSelect().Model(folder).Where("f.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("folders: get %s: %w", id, err)
	}
	return folder, nil
}

// Create inserts a new folder. An explicit slug is normalised; otherwise the
// slug is derived from the name with a random suffix, so folders whose names
// slugify identically never collide on the unique slug column.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Folder, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	folderSlug := slug.Slugify(input.Slug)
	if folderSlug == "" {
		folderSlug = s.newSlug(input.Name)
	}

	now := s.now().UTC()
	folder := &Folder{
		ID:        s.newID(),
		Name:      input.Name,
		Slug:      folderSlug,
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.db.NewInsert().Model(folder).Exec(ctx); err != nil {
		return nil, fmt.Errorf("folders: create %q: %w", input.Name, err)
	}

	s.logger.Info("folder created", "id", folder.ID, "slug", folder.Slug)
	return folder, nil
}

// Update applies the non-nil fields of input and returns the fresh row.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Folder, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := s.db.NewUpdate().Model((*Folder)(nil)).Where("id = ?", id)
	changed := false

	if input.Name != nil {
		query = query.Set("name = ?", *input.Name)
		changed = true
	}
	if input.Slug != nil {
		query = query.Set("slug = ?", slug.Slugify(*input.Slug))
		changed = true
	}
	if input.ParentID != nil {
		query = query.Set("parent_id = ?", *input.ParentID)
		changed = true
	}
	if input.SortOrder != nil {
		query = query.Set("sort_order = ?", *input.SortOrder)
		changed = true
	}

	if !changed {
		return existing, nil
	}

	query = query.Set("updated_at = ?", s.now().UTC())
	if _, err := query.Exec(ctx); err != nil {
		return nil, fmt.Errorf("folders: update %s: %w", id, err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes a folder. Documents referencing it fall back to no folder
// via the schema's ON DELETE SET NULL.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.NewDelete().Model((*Folder)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("folders: delete %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("folders: delete %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.logger.Info("folder deleted", "id", id)
	return nil
}
