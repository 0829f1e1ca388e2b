// Package game implements the core mixing-puzzle rules: the glass, the
// per-level session state machine, and solution validation. It has no UI or
// persistence concerns; internal/app wires those around it.
package game

// GlassCapacity is the maximum number of poured ingredients a glass holds.
const GlassCapacity = 8

// IngredientType is a free-form ingredient tag ("rum", "mint", ...).
type IngredientType string

// RecipeIngredient is one requirement line of a recipe.
type RecipeIngredient struct {
	Type     IngredientType `yaml:"type"`
	Quantity int            `yaml:"quantity"`
}

// Recipe is the target drink for one level. Immutable once loaded; levels
// reference recipes by 1-based catalog index, not by ID.
type Recipe struct {
	ID               int                `yaml:"id"`
	Name             string             `yaml:"name"`
	Emoji            string             `yaml:"emoji"`
	TimeLimitSeconds int                `yaml:"time_limit"`
	Ingredients      []RecipeIngredient `yaml:"ingredients"`
	RequiredStirs    int                `yaml:"required_stirs"`
}

// PourRules decides which ingredient types are pour-sensitive: they only
// count toward a recipe when the bottle was flipped at pour time.
type PourRules struct {
	sensitive map[IngredientType]bool
}

// NewPourRules builds pour rules from a list of pour-sensitive types.
func NewPourRules(types []IngredientType) PourRules {
	m := make(map[IngredientType]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	return PourRules{sensitive: m}
}

// DefaultPourRules returns the stock pour-sensitive set. Soda is kept in the
// list on purpose: flipping the soda bottle has always been part of the game.
func DefaultPourRules() PourRules {
	return NewPourRules([]IngredientType{
		"rum", "tequila", "whiskey", "vodka", "gin", "vermouth", "soda", "bitters",
	})
}

// PourSensitive reports whether t requires a flipped bottle.
func (r PourRules) PourSensitive(t IngredientType) bool {
	return r.sensitive[t]
}
