// Package blob persists raw Markdown bodies outside the relational store.
// Documents metadata lives in sqlite; the body bytes live here under keys of
// the form "documents/<slug>.md".
package blob

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested key does not exist in the store.
var ErrNotFound = errors.New("blob: object not found")

// Store is the contract shared by the S3, filesystem, and in-memory drivers.
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// DocumentKey maps a document slug onto its storage key.
func DocumentKey(slug string) string {
	return fmt.Sprintf("documents/%s.md", slug)
}
