package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the lookup key.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when a unique column would be duplicated.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")
)
