// Package publish implements the synchronization between a local Markdown
// tree and the remote document inventory: slug resolution, folder
// auto-creation with a per-run cache, create-versus-update decisions, and a
// dry-run mode that never mutates the backend.
package publish

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one local Markdown file queued for publishing. DirName is the
// direct parent directory name relative to the publish root; it is empty for
// root-level files and for single-file publishes, and acts as an implicit
// folder hint.
type Entry struct {
	Path    string
	DirName string
}

// CollectEntries resolves path into the ordered list of files to publish.
// Directories are walked depth-first and only .md files are collected;
// anything else is silently ignored. The second return reports whether path
// was a directory.
func CollectEntries(path string) ([]Entry, bool, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, false, fmt.Errorf("publish: resolve %s: %w", path, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, fmt.Errorf("publish: stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return []Entry{{Path: resolved}}, false, nil
	}

	var entries []Entry
	err = filepath.WalkDir(resolved, func(current string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(resolved, current)
		if err != nil {
			return err
		}
		entry := Entry{Path: current}
		if parent := filepath.Dir(rel); parent != "." {
			entry.DirName = filepath.Base(parent)
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, true, fmt.Errorf("publish: walk %s: %w", path, err)
	}
	return entries, true, nil
}
