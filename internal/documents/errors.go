package documents

import "errors"

var (
	ErrNotFound      = errors.New("documents: document not found")
	ErrTitleRequired = errors.New("documents: title is required")
	ErrSlugTaken     = errors.New("documents: slug already in use")
)
