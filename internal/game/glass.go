package game

// PouredIngredient records one pour event. The flip state is a property of
// the pour, not of the recipe line it may end up satisfying.
type PouredIngredient struct {
	Type       IngredientType
	WasFlipped bool
}

// Glass is the mutable mixing state for one attempt. It is created empty at
// level load and cleared on every reset; Pour and Stir are the only mutations.
type Glass struct {
	rules  PourRules
	poured []PouredIngredient
	stirs  int
}

// NewGlass returns an empty glass governed by the given pour rules.
func NewGlass(rules PourRules) *Glass {
	return &Glass{rules: rules}
}

// Pour appends an ingredient. It rejects the pour with ErrGlassFull at
// capacity and with ErrFlipRequired when a pour-sensitive type arrives
// unflipped; in both cases the glass is unchanged.
func (g *Glass) Pour(t IngredientType, flipped bool) error {
	if len(g.poured) >= GlassCapacity {
		return ErrGlassFull
	}
	if g.rules.PourSensitive(t) && !flipped {
		return ErrFlipRequired
	}
	g.poured = append(g.poured, PouredIngredient{Type: t, WasFlipped: flipped})
	return nil
}

// Stir increments the stir count. Stirring an empty glass is rejected with
// ErrGlassEmpty. There is no upper bound; only validation cares how many
// stirs a recipe wants.
func (g *Glass) Stir() error {
	if len(g.poured) == 0 {
		return ErrGlassEmpty
	}
	g.stirs++
	return nil
}

// Reset clears the poured sequence and stir count unconditionally.
func (g *Glass) Reset() {
	g.poured = nil
	g.stirs = 0
}

// Contents returns the poured sequence in pour order.
func (g *Glass) Contents() []PouredIngredient {
	out := make([]PouredIngredient, len(g.poured))
	copy(out, g.poured)
	return out
}

// Len returns the number of poured ingredients.
func (g *Glass) Len() int { return len(g.poured) }

// StirCount returns how many times the glass has been stirred.
func (g *Glass) StirCount() int { return g.stirs }

// Empty reports whether nothing has been poured.
func (g *Glass) Empty() bool { return len(g.poured) == 0 }
