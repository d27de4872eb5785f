package catalog

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist in the catalog.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid catalog input.
	ErrInvalidInput = errors.New("invalid catalog input")
)
