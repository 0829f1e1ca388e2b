package ui

import (
	"testing"

	"barmix/internal/game"
)

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{60, "01:00"},
		{75, "01:15"},
		{600, "10:00"},
		{-5, "00:00"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.in); got != tc.want {
			t.Fatalf("FormatClock(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGlassLinesOrder(t *testing.T) {
	contents := []game.PouredIngredient{
		{Type: "mint"},
		{Type: "rum", WasFlipped: true},
	}
	lines := glassLines(contents, true)
	if len(lines) != game.GlassCapacity {
		t.Fatalf("expected %d lines, got %d", game.GlassCapacity, len(lines))
	}
	// Newest pour sits on top of the stack, which renders above the first.
	if lines[len(lines)-1] != "mint" {
		t.Fatalf("bottom slot = %q, want mint", lines[len(lines)-1])
	}
	if lines[len(lines)-2] != "rum (flipped)" {
		t.Fatalf("second slot = %q", lines[len(lines)-2])
	}
	for i := 0; i < len(lines)-2; i++ {
		if lines[i] != "" {
			t.Fatalf("slot %d should be empty, got %q", i, lines[i])
		}
	}
}

func TestIngredientLabelUnicode(t *testing.T) {
	p := game.PouredIngredient{Type: "triple_sec", WasFlipped: true}
	if got := ingredientLabel(p, false); got != "triple sec ↺" {
		t.Fatalf("label = %q", got)
	}
}
