package store

import (
	"errors"
	"fmt"
)

// DuplicateKeyError is returned by Add when the id is already present.
// The store is unchanged when this error is returned.
type DuplicateKeyError struct {
	// ID is the id that already exists.
	ID int
}

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate id %d: record already exists", e.ID)
}

// IsDuplicateKey returns true if err is or wraps a DuplicateKeyError.
func IsDuplicateKey(err error) bool {
	var de *DuplicateKeyError
	return errors.As(err, &de)
}
