// Package timeline assembles the public reading views: the published
// document timeline and the mixed timeline that interleaves quick notes
// between documents by publish time.
package timeline

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ItemTypeDocument and ItemTypeNote tag mixed timeline entries.
const (
	ItemTypeDocument = "document"
	ItemTypeNote     = "note"
)

// FolderRef is the folder shape embedded in timeline entries.
type FolderRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Item is one published document on the timeline.
type Item struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary,omitempty"`
	IsPrivate   bool       `json:"is_private"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Folder      *FolderRef `json:"folder,omitempty"`
}

// MixedItem is a timeline entry that is either a document or a quick note.
// Note entries carry Content and no title/slug/folder.
type MixedItem struct {
	Type        string     `json:"type"`
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title,omitempty"`
	Slug        string     `json:"slug,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content,omitempty"`
	IsPrivate   bool       `json:"is_private"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Folder      *FolderRef `json:"folder,omitempty"`
}

// Page is one page of document timeline entries.
type Page struct {
	Items []*Item `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

// MixedPage is one page of mixed timeline entries.
type MixedPage struct {
	Items []*MixedItem `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// Options controls timeline pagination and the optional folder filter.
// When FolderID is set, the mixed timeline drops quick notes entirely:
// notes have no folder, so a folder-scoped view is documents only.
type Options struct {
	Page     int
	Limit    int
	FolderID *uuid.UUID
}

func (o Options) normalize() (page, limit, offset int) {
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

// Service reads timeline views straight from the relational store. The
// UNION between documents and quick_notes does not map onto the model
// layer, so queries here are raw SQL.
type Service struct {
	db *bun.DB
}

// NewService builds a timeline service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// Documents returns the published document timeline, newest first.
func (s *Service) Documents(ctx context.Context, opts Options) (*Page, error) {
	page, limit, offset := opts.normalize()

	query := `
		SELECT d.id, d.title, d.slug, d.summary, d.is_private, d.published_at,
		       f.id AS folder_id, f.name AS folder_name, f.slug AS folder_slug
		FROM documents d
		LEFT JOIN folders f ON d.folder_id = f.id
		WHERE d.is_published = 1`
	args := []any{}

	if opts.FolderID != nil {
		query += " AND d.folder_id = ?"
		args = append(args, *opts.FolderID)
	}
	query += " ORDER BY d.published_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("timeline: documents: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		var (
			item        Item
			summary     sql.NullString
			publishedAt nullableTime
			folderID    sql.NullString
			folderName  sql.NullString
			folderSlug  sql.NullString
		)
		err := rows.Scan(&item.ID, &item.Title, &item.Slug, &summary, &item.IsPrivate,
			&publishedAt, &folderID, &folderName, &folderSlug)
		if err != nil {
			return nil, fmt.Errorf("timeline: scan document: %w", err)
		}
		item.Summary = summary.String
		if publishedAt.Valid {
			t := publishedAt.Time
			item.PublishedAt = &t
		}
		item.Folder = scanFolderRef(folderID, folderName, folderSlug)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("timeline: documents: %w", err)
	}

	total, err := s.countDocuments(ctx, opts.FolderID)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Mixed returns documents and active quick notes interleaved by publish
// time (note creation time stands in for publish time).
func (s *Service) Mixed(ctx context.Context, opts Options) (*MixedPage, error) {
	page, limit, offset := opts.normalize()

	query := `
		SELECT 'document' AS type, d.id, d.title, d.slug, d.summary, d.is_private, d.published_at,
		       f.id AS folder_id, f.name AS folder_name, f.slug AS folder_slug, NULL AS content
		FROM documents d
		LEFT JOIN folders f ON d.folder_id = f.id
		WHERE d.is_published = 1`
	args := []any{}

	if opts.FolderID != nil {
		query += " AND d.folder_id = ?"
		args = append(args, *opts.FolderID)
	} else {
		query += `
		UNION ALL
		SELECT 'note' AS type, id, NULL, NULL, NULL, 0,
		       created_at AS published_at, NULL, NULL, NULL, content
		FROM quick_notes
		WHERE is_archived = 0`
	}
	query += " ORDER BY published_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("timeline: mixed: %w", err)
	}
	defer rows.Close()

	items := []*MixedItem{}
	for rows.Next() {
		var (
			item        MixedItem
			title       sql.NullString
			slug        sql.NullString
			summary     sql.NullString
			publishedAt nullableTime
			folderID    sql.NullString
			folderName  sql.NullString
			folderSlug  sql.NullString
			content     sql.NullString
		)
		err := rows.Scan(&item.Type, &item.ID, &title, &slug, &summary, &item.IsPrivate,
			&publishedAt, &folderID, &folderName, &folderSlug, &content)
		if err != nil {
			return nil, fmt.Errorf("timeline: scan mixed: %w", err)
		}
		item.Title = title.String
		item.Slug = slug.String
		item.Summary = summary.String
		item.Content = content.String
		if publishedAt.Valid {
			t := publishedAt.Time
			item.PublishedAt = &t
		}
		item.Folder = scanFolderRef(folderID, folderName, folderSlug)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("timeline: mixed: %w", err)
	}

	total, err := s.countDocuments(ctx, opts.FolderID)
	if err != nil {
		return nil, err
	}
	if opts.FolderID == nil {
		noteTotal, err := s.countActiveNotes(ctx)
		if err != nil {
			return nil, err
		}
		total += noteTotal
	}
	return &MixedPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) countDocuments(ctx context.Context, folderID *uuid.UUID) (int, error) {
	query := "SELECT COUNT(*) FROM documents WHERE is_published = 1"
	args := []any{}
	if folderID != nil {
		query += " AND folder_id = ?"
		args = append(args, *folderID)
	}
	var total int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("timeline: count documents: %w", err)
	}
	return total, nil
}

func (s *Service) countActiveNotes(ctx context.Context) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM quick_notes WHERE is_archived = 0").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("timeline: count notes: %w", err)
	}
	return total, nil
}

// nullableTime scans TIMESTAMP values that arrive either as time.Time or,
// for UNION-aliased columns where sqlite loses the declared type, as raw
// text.
type nullableTime struct {
	Time  time.Time
	Valid bool
}

func (n *nullableTime) Scan(src any) error {
	n.Time, n.Valid = time.Time{}, false
	switch v := src.(type) {
	case nil:
		return nil
	case time.Time:
		n.Time, n.Valid = v, true
		return nil
	case []byte:
		return n.parse(string(v))
	case string:
		return n.parse(v)
	default:
		return fmt.Errorf("timeline: cannot scan %T into timestamp", src)
	}
}

func (n *nullableTime) parse(value string) error {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			n.Time, n.Valid = t, true
			return nil
		}
	}
	return fmt.Errorf("timeline: cannot parse timestamp %q", value)
}

func scanFolderRef(id, name, slug sql.NullString) *FolderRef {
	if !id.Valid {
		return nil
	}
	parsed, err := uuid.Parse(id.String)
	if err != nil {
		return nil
	}
	return &FolderRef{ID: parsed, Name: name.String, Slug: slug.String}
}
