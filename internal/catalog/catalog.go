// Package catalog loads and serves the ordered recipe list. Levels are
// addressed by 1-based index into the catalog; recipe IDs are display-only.
package catalog

import (
	"fmt"

	"barmix/internal/game"
)

// Catalog is the immutable, ordered recipe list for a play-through.
type Catalog struct {
	recipes []game.Recipe
}

// New wraps an ordered recipe slice.
func New(recipes []game.Recipe) *Catalog {
	out := make([]game.Recipe, len(recipes))
	copy(out, recipes)
	return &Catalog{recipes: out}
}

// Len returns the number of levels.
func (c *Catalog) Len() int { return len(c.recipes) }

// ByLevel returns the recipe for a 1-based level index.
func (c *Catalog) ByLevel(index int) (game.Recipe, error) {
	if index < 1 || index > len(c.recipes) {
		return game.Recipe{}, fmt.Errorf("level %d out of range [1,%d]", index, len(c.recipes))
	}
	return c.recipes[index-1], nil
}

// Recipes returns a copy of the full ordered list.
func (c *Catalog) Recipes() []game.Recipe {
	out := make([]game.Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}
