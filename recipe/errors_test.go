package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")

	err := error(&NetworkError{Op: "search", Err: cause})
	assert.Equal(t, "search: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	err = &NetworkError{Op: "details", StatusCode: 404, Err: errors.New("404 Not Found")}
	assert.Equal(t, "details: unexpected status 404: 404 Not Found", err.Error())

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.Equal(t, 404, netErr.StatusCode)
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&StorageError{Op: "save", Err: cause})
	assert.Equal(t, "favorites save: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}
