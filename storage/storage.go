// Package storage persists the favorites blob under a single key. Backends
// store opaque bytes; encoding is left to the caller.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("state not found")

// DefaultKey is the key favorites are saved under.
const DefaultKey = "favorites"

type State interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// TestState is a simple in-memory implementation for testing
type TestState struct {
	mu      sync.Mutex
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func NewTestState(data []byte) *TestState {
	return &TestState{data: data}
}

func NewEmptyTestState() *TestState {
	return &TestState{loadErr: ErrNotFound}
}

func NewTestStateWithError() *TestState {
	return &TestState{loadErr: errors.New("not found")}
}

// FailSaves makes every following Save return err. A nil err restores saving.
func (t *TestState) FailSaves(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.saveErr = err
}

func (t *TestState) Load(ctx context.Context) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loadErr != nil {
		return nil, t.loadErr
	}
	return t.data, nil
}

func (t *TestState) Save(ctx context.Context, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saveErr != nil {
		return t.saveErr
	}
	t.data = append([]byte(nil), data...)
	t.loadErr = nil
	t.saves++
	return nil
}

// Data returns the last saved bytes.
func (t *TestState) Data() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data
}

// Saves returns how many writes succeeded.
func (t *TestState) Saves() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saves
}
