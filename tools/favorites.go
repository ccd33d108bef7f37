package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipebox/favorites"
	"recipebox/recipe"
)

func hasText(s string) bool { return strings.TrimSpace(s) != "" }

func favoritesOutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"favorites": {
				Type:  "array",
				Items: summarySchema(),
			},
		},
		Required: []string{"favorites"},
	}
}

func favoritesOutput(list []recipe.Summary) (map[string]any, error) {
	return toMap(struct {
		Favorites []recipe.Summary `json:"favorites"`
	}{Favorites: list})
}

type FavoritesList struct{ store *favorites.Store }

func NewFavoritesList(store *favorites.Store) *FavoritesList { return &FavoritesList{store: store} }

func (t *FavoritesList) Name() string        { return "favorites_list" }
func (t *FavoritesList) Title() string       { return "List Favorites" }
func (t *FavoritesList) Description() string { return "Returns saved favorite recipes in the order they were added." }

func (t *FavoritesList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *FavoritesList) OutputSchema() *jsonschema.Schema { return favoritesOutputSchema() }

func (t *FavoritesList) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	return favoritesOutput(t.store.List())
}

type FavoriteAdd struct{ store *favorites.Store }

func NewFavoriteAdd(store *favorites.Store) *FavoriteAdd { return &FavoriteAdd{store: store} }

func (t *FavoriteAdd) Name() string  { return "favorite_add" }
func (t *FavoriteAdd) Title() string { return "Add Favorite" }
func (t *FavoriteAdd) Description() string {
	return "Saves a recipe as a favorite. Saving an id that is already a favorite changes nothing."
}

func (t *FavoriteAdd) InputSchema() *jsonschema.Schema {
	s := summarySchema()
	s.Required = []string{"id", "title"}
	return s
}

func (t *FavoriteAdd) OutputSchema() *jsonschema.Schema { return favoritesOutputSchema() }

func (t *FavoriteAdd) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, ok, err := intArg(input, "id")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("id is required")
	}
	title := stringArg(input, "title")
	if !hasText(title) {
		return nil, fmt.Errorf("title is required")
	}

	r := recipe.Summary{ID: id, Title: title, Image: stringArg(input, "image")}
	if n, ok, err := intArg(input, "usedIngredientCount"); err != nil {
		return nil, err
	} else if ok {
		r.UsedIngredientCount = &n
	}
	if n, ok, err := intArg(input, "missedIngredientCount"); err != nil {
		return nil, err
	} else if ok {
		r.MissedIngredientCount = &n
	}

	if err := t.store.Add(ctx, r); err != nil {
		return nil, err
	}
	return favoritesOutput(t.store.List())
}

type FavoriteRemove struct{ store *favorites.Store }

func NewFavoriteRemove(store *favorites.Store) *FavoriteRemove { return &FavoriteRemove{store: store} }

func (t *FavoriteRemove) Name() string  { return "favorite_remove" }
func (t *FavoriteRemove) Title() string { return "Remove Favorite" }
func (t *FavoriteRemove) Description() string {
	return "Removes a recipe id from favorites. Removing an id that is not saved changes nothing."
}

func (t *FavoriteRemove) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id": idSchema(),
		},
		Required: []string{"id"},
	}
}

func (t *FavoriteRemove) OutputSchema() *jsonschema.Schema { return favoritesOutputSchema() }

func (t *FavoriteRemove) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, ok, err := intArg(input, "id")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("id is required")
	}
	if err := t.store.Remove(ctx, id); err != nil {
		return nil, err
	}
	return favoritesOutput(t.store.List())
}
