package notes

import "errors"

var (
	ErrNotFound        = errors.New("notes: note not found")
	ErrContentRequired = errors.New("notes: content is required")
)
