// Package screen holds the view logic of the app: what each screen fetches,
// which state it keeps and how that state renders as text.
package screen

import (
	"context"
	"strings"
	"sync"
)

// Scope ties the work a screen starts to the screen's lifetime. Closing the
// scope cancels its context, and results applied after Close are dropped.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the scope closes.
func (s *Scope) Context() context.Context { return s.ctx }

func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancel()
}

func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Apply runs fn unless the scope is closed and reports whether it ran. Close
// waits for a running fn, so nothing is applied once Close has returned.
func (s *Scope) Apply(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	fn()
	return true
}

// CanSearch reports whether the ingredients input may be submitted.
func CanSearch(ingredients string) bool {
	return strings.TrimSpace(ingredients) != ""
}
