package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// DuplicateKeyError reports a unique-index violation on create, naming the
// offending field so handlers can produce a field-specific conflict.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key on field %q", e.Field)
}
