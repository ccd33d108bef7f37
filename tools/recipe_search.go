package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipebox/recipe"
	"recipebox/spoonacular"
)

type RecipeSearch struct {
	api      RecipeAPI
	defaults spoonacular.SearchOptions
}

func NewRecipeSearch(api RecipeAPI, defaults spoonacular.SearchOptions) *RecipeSearch {
	return &RecipeSearch{api: api, defaults: defaults}
}

func (t *RecipeSearch) Name() string  { return "recipe_search" }
func (t *RecipeSearch) Title() string { return "Search Recipes by Ingredients" }
func (t *RecipeSearch) Description() string {
	return "Finds recipes that use the given comma-separated ingredients."
}

func (t *RecipeSearch) InputSchema() *jsonschema.Schema {
	minNumber := 1.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"ingredients": {
				Type:        "string",
				Description: "Comma-separated ingredients, e.g. chicken,rice",
			},
			"number": {
				Type:    "integer",
				Minimum: &minNumber,
			},
			"ranking": {
				Type: "integer",
				Enum: []any{1, 2},
			},
		},
		Required: []string{"ingredients"},
	}
}

func (t *RecipeSearch) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipes": {
				Type:  "array",
				Items: summarySchema(),
			},
		},
		Required: []string{"recipes"},
	}
}

func (t *RecipeSearch) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	ingredients := stringArg(input, "ingredients")
	if !hasText(ingredients) {
		return nil, recipe.ErrEmptyQuery
	}

	opts := t.defaults
	if n, ok, err := intArg(input, "number"); err != nil {
		return nil, err
	} else if ok {
		opts.Count = n
	}
	if r, ok, err := intArg(input, "ranking"); err != nil {
		return nil, err
	} else if ok {
		opts.Ranking = spoonacular.Ranking(r)
		if !opts.Ranking.IsValid() {
			return nil, fmt.Errorf("ranking must be 1 or 2, got %d", r)
		}
	}

	recipes, err := t.api.SearchByIngredients(ctx, ingredients, opts)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return toMap(struct {
		Recipes []recipe.Summary `json:"recipes"`
	}{Recipes: recipes})
}

func summarySchema() *jsonschema.Schema {
	zero := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":                    idSchema(),
			"title":                 {Type: "string"},
			"image":                 {Type: "string"},
			"usedIngredientCount":   {Type: "integer", Minimum: &zero},
			"missedIngredientCount": {Type: "integer", Minimum: &zero},
		},
		Required: []string{"id", "title"},
	}
}

// idSchema describes a recipe id. The API numbers recipes from 1.
func idSchema() *jsonschema.Schema {
	minID := 1.0
	return &jsonschema.Schema{Type: "integer", Minimum: &minID}
}
