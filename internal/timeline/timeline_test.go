package timeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/uptrace/bun"

	press "github.com/goliatone/go-press"
	"github.com/goliatone/go-press/internal/blob"
	"github.com/goliatone/go-press/internal/documents"
	"github.com/goliatone/go-press/internal/folders"
	"github.com/goliatone/go-press/internal/notes"
	"github.com/goliatone/go-press/internal/storage"
	"github.com/goliatone/go-press/internal/timeline"
)

type fixture struct {
	db      *bun.DB
	docs    *documents.Service
	folders *folders.Service
	notes   *notes.Service
	tl      *timeline.Service
	clock   *fakeClock
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	c.current = c.current.Add(time.Minute)
	return c.current
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := storage.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.Migrate(context.Background(), db, press.GetMigrationsFS()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	clock := &fakeClock{current: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return &fixture{
		db:      db,
		docs:    documents.NewService(db, blob.NewMemoryStore(), documents.WithClock(clock.Now)),
		folders: folders.NewService(db),
		notes:   notes.NewService(db, notes.WithClock(clock.Now)),
		tl:      timeline.NewService(db),
		clock:   clock,
	}
}

func boolPtr(v bool) *bool { return &v }

func TestDocumentsOnlyPublished(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	if _, err := f.docs.Create(ctx, documents.CreateInput{Title: "Visible", Slug: "visible"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.docs.Create(ctx, documents.CreateInput{Title: "Hidden", Slug: "hidden", Published: boolPtr(false)}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	page, err := f.tl.Documents(ctx, timeline.Options{})
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("expected only the published document, got %d items total %d", len(page.Items), page.Total)
	}
	if page.Items[0].Slug != "visible" {
		t.Fatalf("unexpected item %+v", page.Items[0])
	}
}

func TestDocumentsNewestFirstWithFolder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	folder, err := f.folders.Create(ctx, folders.CreateInput{Name: "Tech"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	if _, err := f.docs.Create(ctx, documents.CreateInput{Title: "Older", Slug: "older", FolderID: &folder.ID}); err != nil {
		t.Fatalf("create older: %v", err)
	}
	if _, err := f.docs.Create(ctx, documents.CreateInput{Title: "Newer", Slug: "newer"}); err != nil {
		t.Fatalf("create newer: %v", err)
	}

	page, err := f.tl.Documents(ctx, timeline.Options{})
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].Slug != "newer" {
		t.Fatalf("expected newest first, got %q", page.Items[0].Slug)
	}
	if page.Items[1].Folder == nil || page.Items[1].Folder.Name != "Tech" {
		t.Fatalf("expected folder ref on older item, got %+v", page.Items[1].Folder)
	}

	scoped, err := f.tl.Documents(ctx, timeline.Options{FolderID: &folder.ID})
	if err != nil {
		t.Fatalf("scoped timeline: %v", err)
	}
	if scoped.Total != 1 || scoped.Items[0].Slug != "older" {
		t.Fatalf("expected folder filter to keep only older, got %+v", scoped.Items)
	}
}

func TestMixedInterleavesNotes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	if _, err := f.docs.Create(ctx, documents.CreateInput{Title: "Doc", Slug: "doc"}); err != nil {
		t.Fatalf("create doc: %v", err)
	}
	if _, err := f.notes.Create(ctx, "a passing thought"); err != nil {
		t.Fatalf("create note: %v", err)
	}

	page, err := f.tl.Mixed(ctx, timeline.Options{})
	if err != nil {
		t.Fatalf("mixed: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("expected doc and note, got %d items total %d", len(page.Items), page.Total)
	}
	// Note was created after the document, so it sorts first.
	if page.Items[0].Type != timeline.ItemTypeNote {
		t.Fatalf("expected note first, got %q", page.Items[0].Type)
	}
	if page.Items[0].Content != "a passing thought" {
		t.Fatalf("expected note content, got %q", page.Items[0].Content)
	}
	if page.Items[1].Type != timeline.ItemTypeDocument || page.Items[1].Slug != "doc" {
		t.Fatalf("expected document second, got %+v", page.Items[1])
	}
}

func TestMixedExcludesArchivedNotes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	note, err := f.notes.Create(ctx, "short lived")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if _, err := f.notes.Update(ctx, note.ID, notes.UpdateInput{Archived: boolPtr(true)}); err != nil {
		t.Fatalf("archive: %v", err)
	}

	page, err := f.tl.Mixed(ctx, timeline.Options{})
	if err != nil {
		t.Fatalf("mixed: %v", err)
	}
	if page.Total != 0 || len(page.Items) != 0 {
		t.Fatalf("expected empty mixed timeline, got %+v", page.Items)
	}
}

func TestMixedFolderFilterDropsNotes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	folder, err := f.folders.Create(ctx, folders.CreateInput{Name: "Scoped"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if _, err := f.docs.Create(ctx, documents.CreateInput{Title: "In Folder", Slug: "in-folder", FolderID: &folder.ID}); err != nil {
		t.Fatalf("create doc: %v", err)
	}
	if _, err := f.notes.Create(ctx, "free floating"); err != nil {
		t.Fatalf("create note: %v", err)
	}

	page, err := f.tl.Mixed(ctx, timeline.Options{FolderID: &folder.ID})
	if err != nil {
		t.Fatalf("mixed: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("expected only the folder document, got %d total %d", len(page.Items), page.Total)
	}
	if page.Items[0].Type != timeline.ItemTypeDocument {
		t.Fatalf("expected document, got %q", page.Items[0].Type)
	}
}

func TestLimitCap(t *testing.T) {
	f := setup(t)

	page, err := f.tl.Documents(context.Background(), timeline.Options{Limit: 5000})
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if page.Limit != 100 {
		t.Fatalf("expected limit capped at 100, got %d", page.Limit)
	}
}
