package publish

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-press/internal/client/api"
	"github.com/goliatone/go-press/internal/markdown"
	"github.com/goliatone/go-press/internal/slug"
)

// Action classifies what happened to one file.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionSkipped = "skipped"
)

// Result records the outcome for one processed file, in processing order.
type Result struct {
	File   string
	Action string
	Title  string
	Slug   string
	Folder string
	Error  string
}

// Summary is derived by tallying a result sequence, never by separate
// counters, so it always agrees with the per-file log.
type Summary struct {
	Created int
	Updated int
	Skipped int
}

// Summarize tallies results into a Summary.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Action {
		case ActionCreated:
			s.Created++
		case ActionUpdated:
			s.Updated++
		case ActionSkipped:
			s.Skipped++
		}
	}
	return s
}

// Backend is the slice of the remote API the planner mutates through.
type Backend interface {
	CreateDocument(ctx context.Context, input api.CreateDocumentInput) (*api.Document, error)
	UpdateDocument(ctx context.Context, id string, input api.UpdateDocumentInput) (*api.Document, error)
	CreateFolder(ctx context.Context, input api.CreateFolderInput) (*api.Folder, error)
}

// Planner executes one publish run against an immutable-for-the-run snapshot
// of the remote inventory. Folder auto-creation appends to the planner's own
// folder list so later files in the run see it without a re-fetch; safe only
// because a run is strictly sequential.
type Planner struct {
	backend Backend
	docs    []api.Document
	folders []api.Folder
	cache   map[string]string
	dryRun  bool
	report  func(Result)
}

// PlannerOption mutates the planner configuration.
type PlannerOption func(*Planner)

// DryRun makes the run classify every file without calling any mutating
// endpoint.
func DryRun() PlannerOption {
	return func(p *Planner) {
		p.dryRun = true
	}
}

// WithReporter registers a callback invoked after each file, in order.
func WithReporter(report func(Result)) PlannerOption {
	return func(p *Planner) {
		p.report = report
	}
}

// NewPlanner builds a planner over the fetched remote inventory. The doc and
// folder slices are the run's snapshot; the planner owns them from here.
func NewPlanner(backend Backend, docs []api.Document, folders []api.Folder, opts ...PlannerOption) *Planner {
	planner := &Planner{
		backend: backend,
		docs:    docs,
		folders: folders,
		cache:   map[string]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(planner)
		}
	}
	return planner
}

// Run processes entries strictly in order and returns one Result per entry.
// A single file's failure never aborts the run.
func (p *Planner) Run(ctx context.Context, entries []Entry) []Result {
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		result := p.processEntry(ctx, entry)
		results = append(results, result)
		if p.report != nil {
			p.report(result)
		}
	}
	return results
}

func (p *Planner) processEntry(ctx context.Context, entry Entry) Result {
	skip := func(err error) Result {
		return Result{File: entry.Path, Action: ActionSkipped, Error: err.Error()}
	}

	source, err := os.ReadFile(entry.Path)
	if err != nil {
		return skip(err)
	}
	doc, err := markdown.Parse(source, entry.Path)
	if err != nil {
		return skip(err)
	}
	meta := doc.Meta

	docSlug := meta.Slug
	if docSlug == "" {
		docSlug = slug.Slugify(meta.Title)
	}

	// Frontmatter folder wins over the directory-derived hint.
	folderName := meta.Folder
	if folderName == "" {
		folderName = entry.DirName
	}

	var folderID string
	if folderName != "" {
		folderID, err = p.resolveFolder(ctx, folderName)
		if err != nil {
			return skip(err)
		}
	}

	existing := p.findDocument(docSlug)
	action := ActionCreated
	if existing != nil {
		action = ActionUpdated
	}

	result := Result{
		File:   entry.Path,
		Action: action,
		Title:  meta.Title,
		Slug:   docSlug,
		Folder: folderName,
	}

	if p.dryRun {
		return result
	}

	published := meta.Published
	private := meta.Private

	if existing != nil {
		input := api.UpdateDocumentInput{
			Title:     &meta.Title,
			Slug:      &docSlug,
			Content:   &doc.Body,
			Published: &published,
			Private:   &private,
		}
		if meta.Summary != "" {
			input.Summary = &meta.Summary
		}
		if folderID != "" {
			input.FolderID = &folderID
		}
		if meta.AccessCode != "" {
			input.AccessCode = &meta.AccessCode
		}
		if _, err := p.backend.UpdateDocument(ctx, existing.ID, input); err != nil {
			return skip(err)
		}
		return result
	}

	input := api.CreateDocumentInput{
		Title:      meta.Title,
		Slug:       docSlug,
		Summary:    meta.Summary,
		Content:    doc.Body,
		Published:  &published,
		Private:    &private,
		AccessCode: meta.AccessCode,
	}
	if folderID != "" {
		input.FolderID = &folderID
	}
	created, err := p.backend.CreateDocument(ctx, input)
	if err != nil {
		return skip(err)
	}
	p.docs = append(p.docs, *created)
	return result
}

// resolveFolder maps a folder name to its remote id, creating the folder
// when it does not exist yet. Within one run each name resolves at most
// once: the cache answers repeats, and created folders join the in-run
// inventory. In dry-run mode an unknown folder resolves to "would create"
// with no id.
func (p *Planner) resolveFolder(ctx context.Context, name string) (string, error) {
	if cached, ok := p.cache[name]; ok {
		return cached, nil
	}

	// Name-or-slug match: folder names are the human-facing key in
	// frontmatter, but a slug reference must keep working too.
	for _, folder := range p.folders {
		if folder.Name == name || folder.Slug == name {
			p.cache[name] = folder.ID
			return folder.ID, nil
		}
	}

	if p.dryRun {
		return "", nil
	}

	created, err := p.backend.CreateFolder(ctx, api.CreateFolderInput{
		Name: name,
		Slug: slug.Slugify(name),
	})
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", name, err)
	}
	p.cache[name] = created.ID
	p.folders = append(p.folders, *created)
	return created.ID, nil
}

func (p *Planner) findDocument(docSlug string) *api.Document {
	for i := range p.docs {
		if p.docs[i].Slug == docSlug {
			return &p.docs[i]
		}
	}
	return nil
}
