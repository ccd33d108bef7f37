package screen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"recipebox/favorites"
	"recipebox/recipe"
)

const (
	NoDetailsText      = "No details available."
	NoInstructionsText = "No instructions available."
)

type DetailFetcher interface {
	GetDetails(ctx context.Context, id int) (*recipe.Detail, error)
}

type DetailState struct {
	Loading bool
	// Detail is nil when the fetch failed.
	Detail *recipe.Detail
}

// DetailScreen shows one recipe and toggles it as a favorite.
type DetailScreen struct {
	scope     *Scope
	fetcher   DetailFetcher
	favorites *favorites.Store

	mu    sync.Mutex
	state DetailState
}

func NewDetailScreen(parent context.Context, fetcher DetailFetcher, store *favorites.Store) *DetailScreen {
	return &DetailScreen{
		scope:     NewScope(parent),
		fetcher:   fetcher,
		favorites: store,
		state:     DetailState{Loading: true},
	}
}

// Load fetches the recipe. A failed fetch is logged and renders as "no details".
func (s *DetailScreen) Load(id int) {
	detail, err := s.fetcher.GetDetails(s.scope.Context(), id)
	if err != nil {
		slog.Error("DETAILS: Failed to fetch recipe", "id", id, "error", err)
		detail = nil
	}

	if !s.scope.Apply(func() { s.set(DetailState{Detail: detail}) }) {
		slog.Debug("DETAILS: Dropped details for closed screen", "id", id)
	}
}

func (s *DetailScreen) set(state DetailState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *DetailScreen) State() DetailState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *DetailScreen) IsFavorite() bool {
	st := s.State()
	return st.Detail != nil && s.favorites != nil && s.favorites.Contains(st.Detail.ID)
}

// ToggleFavorite saves or forgets the shown recipe and returns whether it is
// a favorite afterwards. It does nothing until details have loaded.
func (s *DetailScreen) ToggleFavorite(ctx context.Context) (bool, error) {
	st := s.State()
	if st.Detail == nil || s.favorites == nil {
		return false, nil
	}
	return s.favorites.Toggle(ctx, st.Detail.Favorite())
}

func (s *DetailScreen) Close() { s.scope.Close() }

func (s *DetailScreen) Render(w io.Writer) error {
	st := s.State()
	if st.Loading {
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	}
	if st.Detail == nil {
		_, err := fmt.Fprintln(w, NoDetailsText)
		return err
	}

	d := st.Detail
	var b strings.Builder

	heart := ""
	if s.IsFavorite() {
		heart = " ♥"
	}
	fmt.Fprintf(&b, "%s%s\n", d.Title, heart)
	fmt.Fprintf(&b, "%d mins | %d servings | %d likes\n", d.ReadyInMinutes, d.Servings, d.AggregateLikes)

	b.WriteString("\nIngredients\n")
	for _, ing := range d.ExtendedIngredients {
		fmt.Fprintf(&b, "  • %s\n", ing.Original)
	}

	b.WriteString("\nInstructions\n")
	b.WriteString(Instructions(d))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Instructions renders numbered steps when the recipe has analyzed
// instructions, otherwise its instructions with markup removed.
func Instructions(d *recipe.Detail) string {
	if steps := d.Steps(); len(steps) > 0 {
		lines := make([]string, 0, len(steps))
		for _, st := range steps {
			lines = append(lines, fmt.Sprintf("  %d. %s", st.Number, st.Step))
		}
		return strings.Join(lines, "\n")
	}
	if text := recipe.StripHTML(d.Instructions); text != "" {
		return text
	}
	return NoInstructionsText
}
