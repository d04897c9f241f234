package documents

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

	"github.com/goliatone/go-press/internal/auth"
	"github.com/goliatone/go-press/internal/blob"
	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/markdown"
	"github.com/goliatone/go-press/internal/slug"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	markdownContentType = "text/markdown; charset=utf-8"
)

// Service owns document metadata and the blob-backed bodies.
type Service struct {
	db       *bun.DB
	blobs    blob.Store
	renderer *markdown.Renderer
	logger   logging.Logger
	now      func() time.Time
	newID    func() uuid.UUID
	newSlug  func(title string) string
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

// WithRenderer enables HTML rendering on the public document view.
func WithRenderer(r *markdown.Renderer) Option {
	return func(s *Service) {
		s.renderer = r
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

// WithSlugGenerator overrides how slugs are derived from titles when no
// explicit slug is supplied. Test seam; defaults to slug.WithSuffix.
func WithSlugGenerator(gen func(title string) string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newSlug = gen
		}
	}
}

// NewService builds a document service over the relational and blob stores.
func NewService(db *bun.DB, blobs blob.Store, opts ...Option) *Service {
	svc := &Service{
		db:      db,
		blobs:   blobs,
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

// CreateInput carries the attributes accepted when creating a document.
// Published defaults to true and Private to false when left nil.
type CreateInput struct {
	Title      string     `json:"title"`
	Slug       string     `json:"slug,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	Content    string     `json:"content"`
	FolderID   *uuid.UUID `json:"folder_id,omitempty"`
	Published  *bool      `json:"is_published,omitempty"`
	Private    *bool      `json:"is_private,omitempty"`
	AccessCode string     `json:"access_code,omitempty"`
}

// Validate implements the request contract: title is mandatory.
func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 200)),
	)
}

// UpdateInput carries partial document updates. Nil fields stay untouched;
// a pointer to the empty string clears summary or access code. ClearFolder
// detaches the document from its folder.
type UpdateInput struct {
	Title       *string    `json:"title,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	Summary     *string    `json:"summary,omitempty"`
	Content     *string    `json:"content,omitempty"`
	FolderID    *uuid.UUID `json:"folder_id,omitempty"`
	ClearFolder bool       `json:"clear_folder,omitempty"`
	Published   *bool      `json:"is_published,omitempty"`
	Private     *bool      `json:"is_private,omitempty"`
	AccessCode  *string    `json:"access_code,omitempty"`
}

// ListOptions controls admin pagination.
type ListOptions struct {
	Page  int
	Limit int
}

func (o ListOptions) normalize() (page, limit, offset int) {
	page = o.Page
	if page < 1 {
		page = 1
	}
	limit = o.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, (page - 1) * limit
}

// List returns a page of documents ordered by most recently updated.
func (s *Service) List(ctx context.Context, opts ListOptions) (*Page, error) {
	page, limit, offset := opts.normalize()

	var items []*Document
	total, err := s.db.NewSelect().
		Model(&items).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("documents: list: %w", err)
	}
	if items == nil {
		items = []*Document{}
	}
	return &Page{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// GetByID fetches a single document row.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	doc := new(Document)
	err := s.db.NewSelect().Model(doc).Where("d.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("documents: get %s: %w", id, err)
	}
	return doc, nil
}

// GetOptions controls the public document view.
type GetOptions struct {
	IncludeContent  bool
	SessionUnlocked bool
}

// GetBySlug returns the public view of a published document. Private
// documents stay locked unless the caller already unlocked them; a locked
// document returns metadata with an empty body.
func (s *Service) GetBySlug(ctx context.Context, documentSlug string, opts GetOptions) (*Detail, error) {
	doc := new(Document)
	err := s.db.NewSelect().
		Model(doc).
		Relation("Folder").
		Where("d.slug = ?", documentSlug).
		Where("d.is_published = 1").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("documents: get by slug %q: %w", documentSlug, err)
	}

	locked := doc.IsPrivate && !opts.SessionUnlocked

	detail := &Detail{
		ID:          doc.ID,
		Title:       doc.Title,
		Slug:        doc.Slug,
		Summary:     doc.Summary,
		IsPrivate:   doc.IsPrivate,
		IsLocked:    locked,
		PublishedAt: doc.PublishedAt,
		Folder:      folderRef(doc.Folder),
	}

	if opts.IncludeContent && !locked {
		content, err := s.Content(ctx, doc.Slug)
		if err != nil {
			return nil, err
		}
		detail.Content = content
		if s.renderer != nil && content != "" {
			html, err := s.renderer.Render(content)
			if err != nil {
				return nil, fmt.Errorf("documents: render %q: %w", doc.Slug, err)
			}
			detail.ContentHTML = html
		}
	}

	return detail, nil
}

// Content reads the raw Markdown body for a slug. A missing blob reads as
// an empty body rather than an error.
func (s *Service) Content(ctx context.Context, documentSlug string) (string, error) {
	body, err := s.blobs.Get(ctx, blob.DocumentKey(documentSlug))
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("documents: read body %q: %w", documentSlug, err)
	}
	return string(body), nil
}

// Unlock checks an access code against a private document's stored digest.
// Unknown slugs, public documents, and documents without a code all fail.
func (s *Service) Unlock(ctx context.Context, documentSlug, accessCode string) (bool, error) {
	doc := new(Document)
	err := s.db.NewSelect().
		Model(doc).
		Column("access_code_hash").
		Where("d.slug = ?", documentSlug).
		Where("d.is_private = 1").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("documents: unlock %q: %w", documentSlug, err)
	}
	if doc.AccessCodeHash == "" {
		return false, nil
	}
	return auth.VerifySecret(accessCode, doc.AccessCodeHash), nil
}

// Create inserts the metadata row and writes the body blob. The slug is the
// normalised explicit slug when given, otherwise derived from the title with
// a random suffix.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Document, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	docSlug := slug.Slugify(input.Slug)
	if docSlug == "" {
		docSlug = s.newSlug(input.Title)
	}

	taken, err := s.slugExists(ctx, docSlug, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	published := input.Published == nil || *input.Published
	private := input.Private != nil && *input.Private

	now := s.now().UTC()
	doc := &Document{
		ID:          s.newID(),
		Title:       input.Title,
		Slug:        docSlug,
		Summary:     input.Summary,
		FolderID:    input.FolderID,
		IsPublished: published,
		IsPrivate:   private,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if published {
		doc.PublishedAt = &now
	}
	if private && input.AccessCode != "" {
		doc.AccessCodeHash = auth.HashSecret(input.AccessCode)
	}

	if _, err := s.db.NewInsert().Model(doc).Exec(ctx); err != nil {
		return nil, fmt.Errorf("documents: create %q: %w", input.Title, err)
	}

	if err := s.blobs.Put(ctx, blob.DocumentKey(docSlug), []byte(input.Content), markdownContentType); err != nil {
		return nil, fmt.Errorf("documents: write body %q: %w", docSlug, err)
	}

	s.logger.Info("document created", "id", doc.ID, "slug", doc.Slug)
	return doc, nil
}

// Update applies the non-nil fields of input. Changing the slug moves the
// body blob to the new key; flipping is_published on for the first time
// stamps published_at.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Document, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newSlug := existing.Slug
	query := s.db.NewUpdate().Model((*Document)(nil)).Where("id = ?", id)
	changed := false

	if input.Title != nil {
		query = query.Set("title = ?", *input.Title)
		changed = true
	}
	if input.Slug != nil {
		if normalized := slug.Slugify(*input.Slug); normalized != "" && normalized != existing.Slug {
			taken, err := s.slugExists(ctx, normalized, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrSlugTaken
			}
			newSlug = normalized
			query = query.Set("slug = ?", newSlug)
			changed = true
		}
	}
	if input.Summary != nil {
		query = query.Set("summary = ?", *input.Summary)
		changed = true
	}
	if input.ClearFolder {
		query = query.Set("folder_id = NULL")
		changed = true
	} else if input.FolderID != nil {
		query = query.Set("folder_id = ?", *input.FolderID)
		changed = true
	}
	if input.Published != nil {
		query = query.Set("is_published = ?", *input.Published)
		if *input.Published && existing.PublishedAt == nil {
			query = query.Set("published_at = ?", s.now().UTC())
		}
		changed = true
	}
	if input.Private != nil {
		query = query.Set("is_private = ?", *input.Private)
		changed = true
	}
	if input.AccessCode != nil {
		if *input.AccessCode == "" {
			query = query.Set("access_code_hash = NULL")
		} else {
			query = query.Set("access_code_hash = ?", auth.HashSecret(*input.AccessCode))
		}
		changed = true
	}

	if changed {
		query = query.Set("updated_at = ?", s.now().UTC())
		if _, err := query.Exec(ctx); err != nil {
			return nil, fmt.Errorf("documents: update %s: %w", id, err)
		}
	}

	if err := s.moveOrWriteBody(ctx, existing.Slug, newSlug, input.Content); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// moveOrWriteBody keeps the blob in step with the metadata row. A new body
// lands under the (possibly renamed) key and the old key is removed on
// rename; a rename without new content copies the old body across first.
func (s *Service) moveOrWriteBody(ctx context.Context, oldSlug, newSlug string, content *string) error {
	renamed := newSlug != oldSlug

	switch {
	case content != nil:
		if renamed {
			if err := s.blobs.Delete(ctx, blob.DocumentKey(oldSlug)); err != nil && !errors.Is(err, blob.ErrNotFound) {
				return fmt.Errorf("documents: drop old body %q: %w", oldSlug, err)
			}
		}
		if err := s.blobs.Put(ctx, blob.DocumentKey(newSlug), []byte(*content), markdownContentType); err != nil {
			return fmt.Errorf("documents: write body %q: %w", newSlug, err)
		}
	case renamed:
		body, err := s.Content(ctx, oldSlug)
		if err != nil {
			return err
		}
		if err := s.blobs.Put(ctx, blob.DocumentKey(newSlug), []byte(body), markdownContentType); err != nil {
			return fmt.Errorf("documents: move body to %q: %w", newSlug, err)
		}
		if err := s.blobs.Delete(ctx, blob.DocumentKey(oldSlug)); err != nil && !errors.Is(err, blob.ErrNotFound) {
			return fmt.Errorf("documents: drop old body %q: %w", oldSlug, err)
		}
	}
	return nil
}

// Delete removes the metadata row and its body blob.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.db.NewDelete().Model((*Document)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("documents: delete %s: %w", id, err)
	}
	if err := s.blobs.Delete(ctx, blob.DocumentKey(existing.Slug)); err != nil && !errors.Is(err, blob.ErrNotFound) {
		return fmt.Errorf("documents: delete body %q: %w", existing.Slug, err)
	}

	s.logger.Info("document deleted", "id", id, "slug", existing.Slug)
	return nil
}

func (s *Service) slugExists(ctx context.Context, documentSlug string, excludeID uuid.UUID) (bool, error) {
	query := s.db.NewSelect().Model((*Document)(nil)).Where("slug = ?", documentSlug)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	exists, err := query.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("documents: check slug %q: %w", documentSlug, err)
	}
	return exists, nil
}
