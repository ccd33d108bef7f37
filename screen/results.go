package screen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"recipebox/favorites"
	"recipebox/recipe"
)

// Searcher finds recipes for a comma-separated ingredient list.
type Searcher interface {
	Search(ctx context.Context, ingredients string) ([]recipe.Summary, error)
}

// SearchFunc adapts a function to Searcher.
type SearchFunc func(ctx context.Context, ingredients string) ([]recipe.Summary, error)

func (f SearchFunc) Search(ctx context.Context, ingredients string) ([]recipe.Summary, error) {
	return f(ctx, ingredients)
}

type ResultsState struct {
	Loading bool
	Recipes []recipe.Summary
	// Exact is true when every listed recipe uses only the given ingredients.
	Exact bool
}

// ResultsScreen lists the recipes found for an ingredient list, hiding those
// already saved as favorites.
type ResultsScreen struct {
	scope     *Scope
	searcher  Searcher
	favorites *favorites.Store

	mu    sync.Mutex
	state ResultsState
}

func NewResultsScreen(parent context.Context, searcher Searcher, store *favorites.Store) *ResultsScreen {
	return &ResultsScreen{
		scope:     NewScope(parent),
		searcher:  searcher,
		favorites: store,
		state:     ResultsState{Loading: true, Recipes: []recipe.Summary{}},
	}
}

// Load runs the search and updates the screen. Failures leave an empty list.
// Blank ingredients never reach the searcher.
func (s *ResultsScreen) Load(ingredients string) {
	next := ResultsState{Recipes: []recipe.Summary{}, Exact: true}

	if CanSearch(ingredients) {
		found, err := s.searcher.Search(s.scope.Context(), ingredients)
		if err != nil {
			slog.Error("RESULTS: Search failed", "ingredients", ingredients, "error", err)
		} else {
			hide := func(int) bool { return false }
			if s.favorites != nil {
				hide = s.favorites.Contains
			}
			next.Recipes, next.Exact = recipe.SelectMatches(found, hide)
		}
	}

	if !s.scope.Apply(func() { s.set(next) }) {
		slog.Debug("RESULTS: Dropped results for closed screen", "ingredients", ingredients)
	}
}

func (s *ResultsScreen) set(state ResultsState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *ResultsScreen) State() ResultsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ResultsScreen) Close() { s.scope.Close() }

func (s *ResultsScreen) Render(w io.Writer) error {
	st := s.State()
	if st.Loading {
		_, err := fmt.Fprintln(w, "Finding the best recipes...")
		return err
	}

	headline := fmt.Sprintf("No exact matches found. Here are %d close matches:", len(st.Recipes))
	if st.Exact {
		headline = fmt.Sprintf("Found %d recipes you can make right now!", len(st.Recipes))
	}
	if _, err := fmt.Fprintln(w, headline); err != nil {
		return err
	}

	for _, r := range st.Recipes {
		line := fmt.Sprintf("  [%d] %s", r.ID, r.Title)
		if r.UsedIngredientCount != nil && r.MissedIngredientCount != nil {
			line += fmt.Sprintf(" (uses %d, missing %d)", *r.UsedIngredientCount, *r.MissedIngredientCount)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
