// Package settings stores site-wide key/value configuration with a defaults
// overlay: reads always succeed, falling back to built-in values for keys
// that were never written.
package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-press/internal/logging"
)

// Defaults are the values returned for keys never written to the store.
var Defaults = map[string]string{
	"site_title":       "go-press",
	"site_description": "A minimalist personal Markdown publishing platform",
	"site_subtitle":    "",
	"timezone":         "UTC",
	"posts_per_page":   "20",
}

// Setting is a single stored key/value row.
type Setting struct {
	bun.BaseModel `bun:"table:settings,alias:s"`

	Key       string    `bun:"key,pk"             json:"key"`
	Value     string    `bun:"value,notnull"      json:"value"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// Service reads and writes site settings.
type Service struct {
	db     *bun.DB
	logger logging.Logger
	now    func() time.Time
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

// NewService builds a settings service.
func NewService(db *bun.DB, opts ...Option) *Service {
	svc := &Service{
		db:     db,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// All returns every known setting, stored values overlaid on Defaults.
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	var rows []*Setting
	if err := s.db.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return nil, fmt.Errorf("settings: load: %w", err)
	}

	out := make(map[string]string, len(Defaults))
	for key, value := range Defaults {
		out[key] = value
	}
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Get returns a single setting value, falling back to its default.
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	all, err := s.All(ctx)
	if err != nil {
		return "", err
	}
	return all[key], nil
}

// Update upserts every entry of values.
func (s *Service) Update(ctx context.Context, values map[string]string) error {
	now := s.now().UTC()
	for key, value := range values {
		row := &Setting{Key: key, Value: value, UpdatedAt: now}
		_, err := s.db.NewInsert().
			Model(row).
			On("CONFLICT (key) DO UPDATE").
			Set("value = EXCLUDED.value").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("settings: upsert %q: %w", key, err)
		}
	}
	s.logger.Info("settings updated", "keys", len(values))
	return nil
}
