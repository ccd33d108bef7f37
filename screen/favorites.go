package screen

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"recipebox/favorites"
	"recipebox/recipe"
)

const NoFavoritesText = "No favorites yet. Start exploring!"

// FavoritesScreen lists saved recipes and follows store changes until closed.
type FavoritesScreen struct {
	unsubscribe func()

	mu    sync.Mutex
	items []recipe.Summary
}

func NewFavoritesScreen(store *favorites.Store) *FavoritesScreen {
	s := &FavoritesScreen{items: store.List()}
	s.unsubscribe = store.Subscribe(func(e favorites.Event) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.items = e.Favorites
	})
	return s
}

func (s *FavoritesScreen) Items() []recipe.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *FavoritesScreen) Close() { s.unsubscribe() }

func (s *FavoritesScreen) Render(w io.Writer) error {
	items := s.Items()
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, NoFavoritesText)
		return err
	}
	if _, err := fmt.Fprintln(w, "Favorites"); err != nil {
		return err
	}
	for _, r := range items {
		if _, err := fmt.Fprintf(w, "  [%d] %s\n", r.ID, r.Title); err != nil {
			return err
		}
	}
	return nil
}
