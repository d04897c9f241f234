package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSStore persists objects as files under a base directory. It is the
// default driver for single-machine deployments where S3 is overkill.
type FSStore struct {
	base string
}

// NewFSStore builds a filesystem store rooted at base, creating the
// directory if needed.
func NewFSStore(base string) (*FSStore, error) {
	base = filepath.Clean(base)
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create base directory %s: %w", base, err)
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) Put(_ context.Context, key string, body []byte, _ string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("blob: create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("blob: write %s: %w", key, err)
	}
	return nil
}

func (s *FSStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("blob: read %s: %w", key, err)
	}
	return body, nil
}

func (s *FSStore) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("blob: delete %s: %w", key, err)
	}
	return nil
}

// resolve maps a store key onto a filesystem path, rejecting traversal
// outside the base directory.
func (s *FSStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("blob: invalid key %q", key)
	}
	return filepath.Join(s.base, clean), nil
}
