package tools

import (
	"context"
	"fmt"
	"sort"

	"recipebox/favorites"
	"recipebox/recipe"
	"recipebox/spoonacular"
)

// RecipeAPI is what the recipe tools need from the API client.
type RecipeAPI interface {
	SearchByIngredients(ctx context.Context, ingredients string, opts spoonacular.SearchOptions) ([]recipe.Summary, error)
	GetDetails(ctx context.Context, id int) (*recipe.Detail, error)
}

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a tool registry over the recipe API and the favorites store.
// defaults fills search options the caller leaves out.
func NewRegistry(api RecipeAPI, store *favorites.Store, defaults spoonacular.SearchOptions) (*Registry, error) {
	if api == nil {
		return nil, fmt.Errorf("recipe API is required")
	}
	if store == nil {
		return nil, fmt.Errorf("favorites store is required")
	}

	tools := map[string]Tool{}
	for _, t := range []Tool{
		NewRecipeSearch(api, defaults),
		NewRecipeDetails(api),
		NewFavoritesList(store),
		NewFavoriteAdd(store),
		NewFavoriteRemove(store),
	} {
		tools[t.Name()] = t
	}

	registry := Registry(tools)
	return &registry, nil
}

// GetTools returns all tools in the registry sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}
