package ui

import (
	"fmt"
	"strings"

	"barmix/internal/game"
)

// FormatClock renders seconds as mm:ss. Negative values clamp to 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ingredientLabel renders one poured ingredient, marking flipped pours.
func ingredientLabel(p game.PouredIngredient, ascii bool) string {
	label := strings.ReplaceAll(string(p.Type), "_", " ")
	if p.WasFlipped {
		if ascii {
			return label + " (flipped)"
		}
		return label + " ↺"
	}
	return label
}

// glassLines renders the poured sequence bottom-up inside a fixed-height
// glass, newest pour on top.
func glassLines(contents []game.PouredIngredient, ascii bool) []string {
	lines := make([]string, game.GlassCapacity)
	for i := 0; i < game.GlassCapacity; i++ {
		slot := game.GlassCapacity - 1 - i
		if slot < len(contents) {
			lines[i] = ingredientLabel(contents[slot], ascii)
		} else {
			lines[i] = ""
		}
	}
	return lines
}

// stirMarks renders the stir progress, e.g. "2/3".
func stirMarks(done, required int) string {
	return fmt.Sprintf("%d/%d", done, required)
}
