// Package favorites keeps the user's saved recipes: an ordered list, unique
// by recipe id, mirrored in memory and persisted as one JSON array.
//
// Every change rewrites the whole list. The mutex serializes callers within
// a process; two processes writing the same state still overwrite each other.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"recipebox/recipe"
	"recipebox/storage"
)

type EventKind int

const (
	Added EventKind = iota + 1
	Removed
)

func (k EventKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes one successful change. Favorites is the list after it; each
// subscriber gets its own copy.
type Event struct {
	Kind      EventKind
	Recipe    recipe.Summary
	Favorites []recipe.Summary
}

// Store owns the favorites list. Share one Store between every consumer.
type Store struct {
	mu        sync.Mutex
	state     storage.State
	favorites []recipe.Summary

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// Open creates a store over state and loads the persisted list.
func Open(ctx context.Context, state storage.State) *Store {
	s := &Store{state: state, subs: map[int]func(Event){}}
	s.Load(ctx)
	return s
}

// Load replaces the in-memory list with the persisted one and returns it. A
// missing, unreadable or malformed blob yields an empty list.
func (s *Store) Load(ctx context.Context) []recipe.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites = s.read(ctx)
	return slices.Clone(s.favorites)
}

func (s *Store) read(ctx context.Context) []recipe.Summary {
	data, err := s.state.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return []recipe.Summary{}
	}
	if err != nil {
		slog.Error("FAVORITES: Failed to load favorites", "error", &recipe.StorageError{Op: "load", Err: err})
		return []recipe.Summary{}
	}
	if len(data) == 0 {
		return []recipe.Summary{}
	}

	var stored []recipe.Summary
	if err := json.Unmarshal(data, &stored); err != nil {
		slog.Error("FAVORITES: Failed to parse favorites", "error", &recipe.StorageError{Op: "parse", Err: err})
		return []recipe.Summary{}
	}

	out := make([]recipe.Summary, 0, len(stored))
	seen := make(map[int]bool, len(stored))
	for _, r := range stored {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	if len(out) != len(stored) {
		slog.Warn("FAVORITES: Dropped duplicate favorites", "stored", len(stored), "kept", len(out))
	}
	return out
}

// List returns a copy of the favorites in insertion order.
func (s *Store) List() []recipe.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.favorites)
}

func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.favorites, func(r recipe.Summary) bool { return r.ID == id })
}

// Add appends r and persists the list. Adding an id already present does nothing.
func (s *Store) Add(ctx context.Context, r recipe.Summary) error {
	s.mu.Lock()
	if s.indexOf(r.ID) >= 0 {
		s.mu.Unlock()
		return nil
	}

	next := append(slices.Clone(s.favorites), r)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := slices.Clone(next)
	s.mu.Unlock()

	slog.Info("FAVORITES: Added favorite", "id", r.ID, "title", r.Title, "count", len(snapshot))
	s.publish(Event{Kind: Added, Recipe: r, Favorites: snapshot})
	return nil
}

// Remove drops the recipe with id and persists the list. Removing an absent
// id does nothing.
func (s *Store) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}

	removed := s.favorites[i]
	next := slices.Delete(slices.Clone(s.favorites), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := slices.Clone(next)
	s.mu.Unlock()

	slog.Info("FAVORITES: Removed favorite", "id", id, "count", len(snapshot))
	s.publish(Event{Kind: Removed, Recipe: removed, Favorites: snapshot})
	return nil
}

// Toggle removes r if it is a favorite and adds it otherwise. It returns
// whether r is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, r recipe.Summary) (bool, error) {
	if s.Contains(r.ID) {
		if err := s.Remove(ctx, r.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.Add(ctx, r); err != nil {
		return false, err
	}
	return true, nil
}

// commit persists next and only then makes it the in-memory list. Callers hold mu.
func (s *Store) commit(ctx context.Context, next []recipe.Summary) error {
	data, err := json.Marshal(next)
	if err != nil {
		return &recipe.StorageError{Op: "encode", Err: err}
	}
	if err := s.state.Save(ctx, data); err != nil {
		return &recipe.StorageError{Op: "save", Err: err}
	}
	s.favorites = next
	return nil
}

// Subscribe registers fn to be called after every successful change, on the
// goroutine that made it. The returned func unregisters fn.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subs, id)
		})
	}
}

func (s *Store) publish(e Event) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		own := e
		own.Favorites = slices.Clone(e.Favorites)
		fn(own)
	}
}
