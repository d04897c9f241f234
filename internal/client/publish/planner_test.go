package publish_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-press/internal/client/api"
	"github.com/goliatone/go-press/internal/client/publish"
)

// fakeBackend records every mutating call and hands out deterministic ids.
type fakeBackend struct {
	docCreates    []api.CreateDocumentInput
	docUpdates    map[string]api.UpdateDocumentInput
	folderCreates []api.CreateFolderInput
	failCreateFor string
	nextID        int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{docUpdates: map[string]api.UpdateDocumentInput{}}
}

func (f *fakeBackend) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeBackend) CreateDocument(_ context.Context, input api.CreateDocumentInput) (*api.Document, error) {
	if f.failCreateFor != "" && input.Slug == f.failCreateFor {
		return nil, fmt.Errorf("backend rejected %q", input.Slug)
	}
	f.docCreates = append(f.docCreates, input)
	doc := &api.Document{ID: f.id("doc"), Title: input.Title, Slug: input.Slug, FolderID: input.FolderID}
	return doc, nil
}

func (f *fakeBackend) UpdateDocument(_ context.Context, id string, input api.UpdateDocumentInput) (*api.Document, error) {
	f.docUpdates[id] = input
	slug := ""
	if input.Slug != nil {
		slug = *input.Slug
	}
	return &api.Document{ID: id, Slug: slug}, nil
}

func (f *fakeBackend) CreateFolder(_ context.Context, input api.CreateFolderInput) (*api.Folder, error) {
	f.folderCreates = append(f.folderCreates, input)
	return &api.Folder{ID: f.id("folder"), Name: input.Name, Slug: input.Slug}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPublishCreatesThenUpdatesSameSlug(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hello.md", "---\ntitle: Hello World\n---\n\nBody one.")

	backend := newFakeBackend()

	entries, isDir, err := publish.CollectEntries(dir)
	require.NoError(t, err)
	require.True(t, isDir)
	require.Len(t, entries, 1)

	first := publish.NewPlanner(backend, nil, nil).Run(context.Background(), entries)
	require.Len(t, first, 1)
	assert.Equal(t, publish.ActionCreated, first[0].Action)
	assert.Equal(t, "hello-world", first[0].Slug)
	require.Len(t, backend.docCreates, 1)

	// Second run with the refreshed inventory must update, never duplicate.
	inventory := []api.Document{{ID: "doc-1", Title: "Hello World", Slug: "hello-world"}}
	second := publish.NewPlanner(backend, inventory, nil).Run(context.Background(), entries)
	require.Len(t, second, 1)
	assert.Equal(t, publish.ActionUpdated, second[0].Action)
	assert.Len(t, backend.docCreates, 1, "no second create for the same slug")
	assert.Contains(t, backend.docUpdates, "doc-1")
}

func TestExplicitSlugWinsOverTitle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.md", "---\ntitle: Some Title\nslug: custom-slug\n---\n\nBody.")

	backend := newFakeBackend()
	entries, _, err := publish.CollectEntries(dir)
	require.NoError(t, err)

	results := publish.NewPlanner(backend, nil, nil).Run(context.Background(), entries)
	assert.Equal(t, "custom-slug", results[0].Slug)
}

func TestFolderResolutionIsMemoized(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 3; i++ {
		writeFile(t, dir, fmt.Sprintf("p%d.md", i),
			fmt.Sprintf("---\ntitle: Post %d\nfolder: Shared Notes\n---\n\nBody %d.", i, i))
	}

	backend := newFakeBackend()
	entries, _, err := publish.CollectEntries(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	results := publish.NewPlanner(backend, nil, nil).Run(context.Background(), entries)
	require.Len(t, results, 3)

	require.Len(t, backend.folderCreates, 1, "one create for N references to the same folder")
	assert.Equal(t, "Shared Notes", backend.folderCreates[0].Name)
	assert.Equal(t, "shared-notes", backend.folderCreates[0].Slug)

	require.Len(t, backend.docCreates, 3)
	folderID := backend.docCreates[0].FolderID
	require.NotNil(t, folderID)
	for _, create := range backend.docCreates {
		require.NotNil(t, create.FolderID)
		assert.Equal(t, *folderID, *create.FolderID, "all files resolve to the same folder id")
	}
}

func TestFolderMatchesByNameOrSlug(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: A\nfolder: Tech Notes\n---\n\nbody")
	writeFile(t, dir, "b.md", "---\ntitle: B\nfolder: tech-notes\n---\n\nbody")

	remote := []api.Folder{{ID: "folder-9", Name: "Tech Notes", Slug: "tech-notes"}}

	backend := newFakeBackend()
	entries, _, err := publish.CollectEntries(dir)
	require.NoError(t, err)

	publish.NewPlanner(backend, nil, remote).Run(context.Background(), entries)

	assert.Empty(t, backend.folderCreates, "both references match the existing folder")
	for _, create := range backend.docCreates {
		require.NotNil(t, create.FolderID)
		assert.Equal(t, "folder-9", *create.FolderID)
	}
}

func TestDirectoryNameActsAsFolderHint(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "root.md", "---\ntitle: Root Post\n---\n\nbody")
	writeFile(t, dir, filepath.Join("notes", "nested.md"), "---\ntitle: Nested Post\n---\n\nbody")

	backend := newFakeBackend()
	entries, _, err := publish.CollectEntries(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	publish.NewPlanner(backend, nil, nil).Run(context.Background(), entries)

	require.Len(t, backend.folderCreates, 1)
	assert.Equal(t, "notes", backend.folderCreates[0].Name)

	var rootCreate, nestedCreate *api.CreateDocumentInput
	for i := range backend.docCreates {
		switch backend.docCreates[i].Title {
		case "Root Post":
			rootCreate = &backend.docCreates[i]
		case "Nested Post":
			nestedCreate = &backend.docCreates[i]
		}
	}
	require.NotNil(t, rootCreate)
	require.NotNil(t, nestedCreate)
	assert.Nil(t, rootCreate.FolderID, "root-level files carry no folder hint")
	assert.NotNil(t, nestedCreate.FolderID)
}

func TestFrontmatterFolderBeatsDirectoryHint(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("drafts", "post.md"), "---\ntitle: Post\nfolder: Published\n---\n\nbody")

	backend := newFakeBackend()
	entries, _, err := publish.CollectEntries(dir)
	require.NoError(t, err)

	publish.NewPlanner(backend, nil, nil).Run(context.Background(), entries)

	require.Len(t, backend.folderCreates, 1)
	assert.Equal(t, "Published", backend.folderCreates[0].Name)
}

func TestDryRunHasZeroSideEffects(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "new.md", "---\ntitle: Brand New\nfolder: Fresh\n---\n\nbody")
	writeFile(t, dir, "known.md", "---\ntitle: Known\nslug: known\n---\n\nbody")

	remote := []api.Document{{ID: "doc-5", Title: "Known", Slug: "known"}}

	backend := newFakeBackend()
	entries, _, err := publish.CollectEntries(dir)
	require.NoError(t, err)

	results := publish.NewPlanner(backend, remote, nil, publish.DryRun()).Run(context.Background(), entries)
	require.Len(t, results, 2)

	byTitle := map[string]publish.Result{}
	for _, r := range results {
		byTitle[r.Title] = r
	}
	assert.Equal(t, publish.ActionCreated, byTitle["Brand New"].Action, "classified as would-create")
	assert.Equal(t, publish.ActionUpdated, byTitle["Known"].Action, "classified as would-update")

	assert.Empty(t, backend.docCreates)
	assert.Empty(t, backend.docUpdates)
	assert.Empty(t, backend.folderCreates)
}

func TestPartialFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_first.md", "---\ntitle: First\n---\n\nbody")
	writeFile(t, dir, "b_broken.md", "---\ntitle: [unclosed\nnot yaml\n---\n\nbody")
	writeFile(t, dir, "c_third.md", "---\ntitle: Third\n---\n\nbody")

	backend := newFakeBackend()
	entries, _, err := publish.CollectEntries(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	results := publish.NewPlanner(backend, nil, nil).Run(context.Background(), entries)
	require.Len(t, results, 3)

	summary := publish.Summarize(results)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 1, summary.Skipped)

	var skipped []publish.Result
	for _, r := range results {
		if r.Action == publish.ActionSkipped {
			skipped = append(skipped, r)
		}
	}
	require.Len(t, skipped, 1)
	assert.NotEmpty(t, skipped[0].Error, "skip carries the parse error")
	assert.Len(t, backend.docCreates, 2, "good files on both sides still published")
}

func TestBackendFailureSkipsFileAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_bad.md", "---\ntitle: Bad\nslug: reject-me\n---\n\nbody")
	writeFile(t, dir, "b_good.md", "---\ntitle: Good\nslug: fine\n---\n\nbody")

	backend := newFakeBackend()
	backend.failCreateFor = "reject-me"

	entries, _, err := publish.CollectEntries(dir)
	require.NoError(t, err)

	results := publish.NewPlanner(backend, nil, nil).Run(context.Background(), entries)
	summary := publish.Summarize(results)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Skipped)
}

func TestEndToEndScenario(t *testing.T) {
	// posts/a.md with no folder, posts/notes/b.md hinting folder "notes";
	// remote empty. Expect folder "notes" created once, both documents
	// created, summary 2/0/0.
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: Hello\n---\n\nHello body.")
	writeFile(t, dir, filepath.Join("notes", "b.md"), "---\ntitle: World\nfolder: notes\n---\n\nWorld body.")

	backend := newFakeBackend()
	entries, isDir, err := publish.CollectEntries(dir)
	require.NoError(t, err)
	require.True(t, isDir)

	var reported []publish.Result
	planner := publish.NewPlanner(backend, nil, nil, publish.WithReporter(func(r publish.Result) {
		reported = append(reported, r)
	}))
	results := planner.Run(context.Background(), entries)

	summary := publish.Summarize(results)
	assert.Equal(t, publish.Summary{Created: 2, Updated: 0, Skipped: 0}, summary)
	assert.Equal(t, results, reported, "reporter sees the same sequence")

	require.Len(t, backend.folderCreates, 1)
	assert.Equal(t, "notes", backend.folderCreates[0].Name)

	byTitle := map[string]api.CreateDocumentInput{}
	for _, create := range backend.docCreates {
		byTitle[create.Title] = create
	}
	require.Contains(t, byTitle, "Hello")
	require.Contains(t, byTitle, "World")
	assert.Equal(t, "hello", byTitle["Hello"].Slug)
	assert.Nil(t, byTitle["Hello"].FolderID)
	assert.Equal(t, "world", byTitle["World"].Slug)
	assert.NotNil(t, byTitle["World"].FolderID)
}

func TestSingleFilePublishHasNoDirHint(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, filepath.Join("nested", "single.md"), "---\ntitle: Single\n---\n\nbody")

	entries, isDir, err := publish.CollectEntries(path)
	require.NoError(t, err)
	assert.False(t, isDir)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].DirName, "single-file publish carries no directory hint")
}

func TestCollectEntriesIgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "post.md", "---\ntitle: Post\n---\n\nbody")
	writeFile(t, dir, "image.png", "not markdown")
	writeFile(t, dir, "README.txt", "not markdown")

	entries, _, err := publish.CollectEntries(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(dir, "post.md"), entries[0].Path)
}
