package folders

import "errors"

var (
	ErrNotFound     = errors.New("folders: folder not found")
	ErrNameRequired = errors.New("folders: name is required")
)
