package catalog

import "barmix/internal/game"

// Builtin returns the fallback catalog used when no recipe file can be
// loaded. Values (time limits 60/50/45, stirs 3/2/1, ingredient lists) are
// kept exactly as shipped; saved games depend on them.
func Builtin() *Catalog {
	return New([]game.Recipe{
		{
			ID:               1,
			Name:             "Mojito",
			Emoji:            "🍹",
			TimeLimitSeconds: 60,
			RequiredStirs:    3,
			Ingredients: []game.RecipeIngredient{
				{Type: "mint", Quantity: 1},
				{Type: "lime", Quantity: 1},
				{Type: "sugar", Quantity: 1},
				{Type: "rum", Quantity: 1},
				{Type: "soda", Quantity: 1},
				{Type: "ice", Quantity: 1},
			},
		},
		{
			ID:               2,
			Name:             "Margarita",
			Emoji:            "🍸",
			TimeLimitSeconds: 50,
			RequiredStirs:    2,
			Ingredients: []game.RecipeIngredient{
				{Type: "tequila", Quantity: 1},
				{Type: "triple_sec", Quantity: 1},
				{Type: "lime_juice", Quantity: 1},
				{Type: "salt", Quantity: 1},
			},
		},
		{
			ID:               3,
			Name:             "Old Fashioned",
			Emoji:            "🥃",
			TimeLimitSeconds: 45,
			RequiredStirs:    1,
			Ingredients: []game.RecipeIngredient{
				{Type: "whiskey", Quantity: 1},
				{Type: "sugar", Quantity: 1},
				{Type: "bitters", Quantity: 1},
				{Type: "orange", Quantity: 1},
			},
		},
	})
}
