package settings_test

import (
	"context"
	"testing"

	"github.com/uptrace/bun"

	press "github.com/goliatone/go-press"
	"github.com/goliatone/go-press/internal/settings"
	"github.com/goliatone/go-press/internal/storage"
)

func setupDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := storage.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.Migrate(context.Background(), db, press.GetMigrationsFS()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAllReturnsDefaultsOnEmptyTable(t *testing.T) {
	svc := settings.NewService(setupDB(t))

	all, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if all["site_title"] != "go-press" {
		t.Fatalf("expected default site_title, got %q", all["site_title"])
	}
	if all["posts_per_page"] != "20" {
		t.Fatalf("expected default posts_per_page, got %q", all["posts_per_page"])
	}
}

func TestUpdateOverlaysDefaults(t *testing.T) {
	svc := settings.NewService(setupDB(t))
	ctx := context.Background()

	err := svc.Update(ctx, map[string]string{
		"site_title": "My Blog",
		"custom_key": "custom",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if all["site_title"] != "My Blog" {
		t.Fatalf("expected stored site_title, got %q", all["site_title"])
	}
	if all["timezone"] != "UTC" {
		t.Fatalf("expected untouched default timezone, got %q", all["timezone"])
	}
	if all["custom_key"] != "custom" {
		t.Fatalf("expected custom key preserved, got %q", all["custom_key"])
	}
}

func TestUpdateIsIdempotentUpsert(t *testing.T) {
	svc := settings.NewService(setupDB(t))
	ctx := context.Background()

	for _, value := range []string{"first", "second"} {
		if err := svc.Update(ctx, map[string]string{"site_title": value}); err != nil {
			t.Fatalf("update %q: %v", value, err)
		}
	}

	got, err := svc.Get(ctx, "site_title")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "second" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}
