package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"barmix/internal/game"
)

// recipeFile is the on-disk shape of a cocktails.yaml file.
type recipeFile struct {
	Cocktails []game.Recipe `yaml:"cocktails"`
}

// Load reads a recipe catalog from a YAML file. Any failure — missing file,
// parse error, invalid content — is returned to the caller, who is expected
// to fall back to Builtin(); a broken catalog file never takes the game down.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var rf recipeFile
	if err := yaml.Unmarshal(b, &rf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rf.Cocktails) == 0 {
		return nil, fmt.Errorf("catalog %s has no cocktails", path)
	}
	for i := range rf.Cocktails {
		applyRecipeDefaults(&rf.Cocktails[i], i)
		if err := validateRecipe(rf.Cocktails[i]); err != nil {
			return nil, fmt.Errorf("catalog %s entry %d: %w", path, i+1, err)
		}
	}
	return New(rf.Cocktails), nil
}

// LoadOrBuiltin loads the catalog file when a path is given and falls back
// to the built-in list on any failure. The returned error is informational:
// the catalog is always usable.
func LoadOrBuiltin(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	c, err := Load(path)
	if err != nil {
		return Builtin(), err
	}
	return c, nil
}

func applyRecipeDefaults(r *game.Recipe, index int) {
	if r.ID == 0 {
		r.ID = index + 1
	}
	if r.TimeLimitSeconds <= 0 {
		r.TimeLimitSeconds = 60
	}
	if r.RequiredStirs < 0 {
		r.RequiredStirs = 0
	}
	for i := range r.Ingredients {
		if r.Ingredients[i].Quantity <= 0 {
			r.Ingredients[i].Quantity = 1
		}
	}
}

func validateRecipe(r game.Recipe) error {
	if r.Name == "" {
		return fmt.Errorf("recipe name is required")
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("recipe %q has no ingredients", r.Name)
	}
	total := 0
	for _, ing := range r.Ingredients {
		if ing.Type == "" {
			return fmt.Errorf("recipe %q has an ingredient without a type", r.Name)
		}
		total += ing.Quantity
	}
	if total > game.GlassCapacity {
		return fmt.Errorf("recipe %q needs %d pours, glass holds %d",
			r.Name, total, game.GlassCapacity)
	}
	return nil
}
