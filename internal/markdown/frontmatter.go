// Package markdown handles the file format contract shared by the server
// and the publisher CLI: YAML frontmatter parsing and HTML rendering.
package markdown

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

// Meta is the structured metadata a Markdown file can declare. Title falls
// back to the file name; Published defaults to true and Private to false
// when the keys are absent.
type Meta struct {
	Title      string
	Slug       string
	Summary    string
	Folder     string
	Published  bool
	Private    bool
	AccessCode string
}

// Document couples parsed metadata with the trimmed Markdown body.
type Document struct {
	Meta Meta
	Body string
}

type metaEnvelope struct {
	Title      string `yaml:"title"`
	Slug       string `yaml:"slug"`
	Summary    string `yaml:"summary"`
	Folder     string `yaml:"folder"`
	Published  *bool  `yaml:"published"`
	Private    *bool  `yaml:"private"`
	AccessCode string `yaml:"access_code"`
}

// Parse extracts metadata and body from raw Markdown source. Files without
// a frontmatter block parse cleanly with defaulted metadata.
func Parse(source []byte, fileName string) (*Document, error) {
	var env metaEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	title := strings.TrimSpace(env.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	}

	meta := Meta{
		Title:      title,
		Slug:       strings.TrimSpace(env.Slug),
		Summary:    strings.TrimSpace(env.Summary),
		Folder:     strings.TrimSpace(env.Folder),
		Published:  env.Published == nil || *env.Published,
		Private:    env.Private != nil && *env.Private,
		AccessCode: env.AccessCode,
	}

	return &Document{
		Meta: meta,
		Body: strings.TrimSpace(string(body)),
	}, nil
}
