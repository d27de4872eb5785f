// Package repository defines the sentinel errors shared by every persistence
// implementation. The interfaces the services consume live with the domain
// packages that own them.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
