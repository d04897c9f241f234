package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-press/internal/logging"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service exposes quick note CRUD backed by bun.
type Service struct {
	db     *bun.DB
	logger logging.Logger
	now    func() time.Time
	newID  func() uuid.UUID
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

// NewService builds a quick note service.
func NewService(db *bun.DB, opts ...Option) *Service {
	svc := &Service{
		db:     db,
		logger: logging.NoOp(),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// UpdateInput carries partial note updates; nil fields are left untouched.
type UpdateInput struct {
	Content  *string `json:"content,omitempty"`
	Archived *bool   `json:"is_archived,omitempty"`
}

// ListOptions controls note pagination. Archived notes are excluded unless
// IncludeArchived is set.
type ListOptions struct {
	Page            int
	Limit           int
	IncludeArchived bool
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

// Create inserts a new note with the given content.
func (s *Service) Create(ctx context.Context, content string) (*Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	now := s.now().UTC()
	note := &Note{
		ID:        s.newID(),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.db.NewInsert().Model(note).Exec(ctx); err != nil {
		return nil, fmt.Errorf("notes: create: %w", err)
	}

	s.logger.Info("note created", "id", note.ID)
	return note, nil
}

// List returns a page of notes, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) (*Page, error) {
	page, limit, offset := opts.normalize()

	var items []*Note
	query := s.db.NewSelect().Model(&items)
	if !opts.IncludeArchived {
		query = query.Where("is_archived = 0")
	}

	total, err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("notes: list: %w", err)
	}
	if items == nil {
		items = []*Note{}
	}
	return &Page{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// GetByID fetches a single note.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Note, error) {
	note := new(Note)
	err := s.db.NewSelect().Model(note).Where("n.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("notes: get %s: %w", id, err)
	}
	return note, nil
}

// Update applies the non-nil fields of input and returns the fresh row.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Note, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := s.db.NewUpdate().Model((*Note)(nil)).Where("id = ?", id)
	changed := false

	if input.Content != nil {
		query = query.Set("content = ?", *input.Content)
		changed = true
	}
	if input.Archived != nil {
		query = query.Set("is_archived = ?", *input.Archived)
		changed = true
	}

	if !changed {
		return existing, nil
	}

	query = query.Set("updated_at = ?", s.now().UTC())
	if _, err := query.Exec(ctx); err != nil {
		return nil, fmt.Errorf("notes: update %s: %w", id, err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a note.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.NewDelete().Model((*Note)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("notes: delete %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("notes: delete %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.logger.Info("note deleted", "id", id)
	return nil
}
