package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a paste id has no record or content.
var ErrNotFound = errors.New("paste not found")

// StorageError wraps a filesystem failure so handlers can distinguish an
// unwritable or unreadable medium from a simple miss.
type StorageError struct {
	Op  string
	ID  string
	Err error
}

func (e *StorageError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
