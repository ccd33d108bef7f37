package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type RecipeDetails struct{ api RecipeAPI }

func NewRecipeDetails(api RecipeAPI) *RecipeDetails { return &RecipeDetails{api: api} }

func (t *RecipeDetails) Name() string  { return "recipe_details" }
func (t *RecipeDetails) Title() string { return "Get Recipe Details" }
func (t *RecipeDetails) Description() string {
	return "Returns servings, ready time, likes, ingredients and instructions for a recipe id."
}

func (t *RecipeDetails) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id": idSchema(),
		},
		Required: []string{"id"},
	}
}

func (t *RecipeDetails) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe": {
				Type: "object",
				// keep schema open to accept the API's detail JSON as-is
			},
		},
		Required: []string{"recipe"},
	}
}

func (t *RecipeDetails) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, ok, err := intArg(input, "id")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("id is required")
	}

	detail, err := t.api.GetDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe details: %w", err)
	}
	return toMap(map[string]any{"recipe": detail})
}
