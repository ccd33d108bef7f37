package recipe

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when a search is attempted with blank ingredients.
var ErrEmptyQuery = errors.New("ingredients query is empty")

// NetworkError reports a failed call to the recipe API: a transport error,
// a non-2xx response or a body that could not be decoded.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StorageError reports a failed read or write of persisted favorites.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("favorites %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
