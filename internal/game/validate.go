package game

// FailReason distinguishes why the ingredient verdict failed, so the UI can
// tell "you are short on limes" from "you poured rum without flipping".
type FailReason int

const (
	FailNone FailReason = iota
	FailShortfall
	FailFlipNotHonored
)

// String returns a display label for the reason.
func (r FailReason) String() string {
	switch r {
	case FailShortfall:
		return "missing ingredients"
	case FailFlipNotHonored:
		return "flip not honored"
	default:
		return ""
	}
}

// Verdict is the structured result of comparing a glass against a recipe.
type Verdict struct {
	IngredientsOK bool
	StirsOK       bool

	// FailedType and Reason describe the first failing requirement in recipe
	// order; zero values when IngredientsOK.
	FailedType IngredientType
	Reason     FailReason

	StirsRequired int
	StirsDone     int
}

// Success reports whether both checks passed.
func (v Verdict) Success() bool { return v.IngredientsOK && v.StirsOK }

// Validate compares the glass contents and stir count against the recipe.
//
// Ingredient policy, per requirement in recipe order: the poured count of the
// type must reach the required quantity, and for pour-sensitive types the
// flipped-pour count must reach it too. The first shortfall ends the scan.
// Extra ingredients and excess quantities are never penalized.
//
// Stir policy: strict minimum — stirCount >= requiredStirs. An older build
// accepted a tolerance of one stir either side; that was dropped because it
// let a 2-stir Margarita pass with a single stir.
func Validate(glass *Glass, recipe Recipe, rules PourRules) Verdict {
	v := Verdict{
		IngredientsOK: true,
		StirsRequired: recipe.RequiredStirs,
		StirsDone:     glass.StirCount(),
	}

	counts := make(map[IngredientType]int)
	flipped := make(map[IngredientType]int)
	for _, p := range glass.Contents() {
		counts[p.Type]++
		if p.WasFlipped {
			flipped[p.Type]++
		}
	}

	for _, req := range recipe.Ingredients {
		if counts[req.Type] < req.Quantity {
			v.IngredientsOK = false
			v.FailedType = req.Type
			v.Reason = FailShortfall
			break
		}
		if rules.PourSensitive(req.Type) && flipped[req.Type] < req.Quantity {
			v.IngredientsOK = false
			v.FailedType = req.Type
			v.Reason = FailFlipNotHonored
			break
		}
	}

	v.StirsOK = glass.StirCount() >= recipe.RequiredStirs
	return v
}
