// Package recipe holds the recipe records exchanged between the API client,
// the favorites store and the screens.
package recipe

// Summary is the minimal record returned by an ingredient search. It is also
// the shape persisted in the favorites list.
type Summary struct {
	ID                    int    `json:"id"`
	Title                 string `json:"title"`
	Image                 string `json:"image"`
	UsedIngredientCount   *int   `json:"usedIngredientCount,omitempty"`
	MissedIngredientCount *int   `json:"missedIngredientCount,omitempty"`
}

// MissesNothing reports whether the search matched every ingredient of the recipe.
func (s Summary) MissesNothing() bool {
	return s.MissedIngredientCount != nil && *s.MissedIngredientCount == 0
}

type Ingredient struct {
	ID       int    `json:"id"`
	Original string `json:"original"`
}

type Step struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

type Instruction struct {
	Name  string `json:"name,omitempty"`
	Steps []Step `json:"steps"`
}

// Detail is the full recipe record fetched per id.
type Detail struct {
	Summary
	Servings             int           `json:"servings"`
	ReadyInMinutes       int           `json:"readyInMinutes"`
	AggregateLikes       int           `json:"aggregateLikes"`
	ExtendedIngredients  []Ingredient  `json:"extendedIngredients"`
	Instructions         string        `json:"instructions"`
	AnalyzedInstructions []Instruction `json:"analyzedInstructions"`
}

// Steps returns the steps of the first analyzed instruction block, if any.
func (d *Detail) Steps() []Step {
	if len(d.AnalyzedInstructions) == 0 {
		return nil
	}
	return d.AnalyzedInstructions[0].Steps
}

// Favorite returns the summary saved when the detail view favorites a recipe.
func (d *Detail) Favorite() Summary {
	return Summary{ID: d.ID, Title: d.Title, Image: d.Image}
}
