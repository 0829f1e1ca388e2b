package game

import (
	"errors"
	"testing"
)

func TestPourAppendsInOrder(t *testing.T) {
	g := NewGlass(DefaultPourRules())
	if err := g.Pour("mint", false); err != nil {
		t.Fatalf("pour mint: %v", err)
	}
	if err := g.Pour("rum", true); err != nil {
		t.Fatalf("pour rum flipped: %v", err)
	}
	got := g.Contents()
	if len(got) != 2 {
		t.Fatalf("expected 2 poured, got %d", len(got))
	}
	if got[0].Type != "mint" || got[0].WasFlipped {
		t.Fatalf("unexpected first pour: %#v", got[0])
	}
	if got[1].Type != "rum" || !got[1].WasFlipped {
		t.Fatalf("unexpected second pour: %#v", got[1])
	}
}

func TestPourSensitiveUnflippedIsRejected(t *testing.T) {
	g := NewGlass(DefaultPourRules())
	err := g.Pour("rum", false)
	if !errors.Is(err, ErrFlipRequired) {
		t.Fatalf("expected ErrFlipRequired, got %v", err)
	}
	if g.Len() != 0 {
		t.Fatalf("rejected pour must not append, len=%d", g.Len())
	}
}

func TestSodaRequiresFlip(t *testing.T) {
	// Soda sits in the pour-sensitive set even though it is non-alcoholic.
	// Preserved behavior; do not "fix" it.
	g := NewGlass(DefaultPourRules())
	if err := g.Pour("soda", false); !errors.Is(err, ErrFlipRequired) {
		t.Fatalf("expected ErrFlipRequired for unflipped soda, got %v", err)
	}
	if err := g.Pour("soda", true); err != nil {
		t.Fatalf("flipped soda should pour: %v", err)
	}
}

func TestPourAtCapacity(t *testing.T) {
	g := NewGlass(DefaultPourRules())
	for i := 0; i < GlassCapacity; i++ {
		if err := g.Pour("ice", false); err != nil {
			t.Fatalf("pour %d: %v", i, err)
		}
	}
	if err := g.Pour("ice", false); !errors.Is(err, ErrGlassFull) {
		t.Fatalf("expected ErrGlassFull, got %v", err)
	}
	if g.Len() != GlassCapacity {
		t.Fatalf("capacity overflowed: len=%d", g.Len())
	}
}

func TestStirEmptyGlass(t *testing.T) {
	g := NewGlass(DefaultPourRules())
	if err := g.Stir(); !errors.Is(err, ErrGlassEmpty) {
		t.Fatalf("expected ErrGlassEmpty, got %v", err)
	}
	if g.StirCount() != 0 {
		t.Fatalf("stir count must stay 0, got %d", g.StirCount())
	}
}

func TestStirCountsWithoutUpperBound(t *testing.T) {
	g := NewGlass(DefaultPourRules())
	if err := g.Pour("lime", false); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if err := g.Stir(); err != nil {
			t.Fatalf("stir %d: %v", i, err)
		}
	}
	if g.StirCount() != 20 {
		t.Fatalf("expected 20 stirs, got %d", g.StirCount())
	}
}

func TestResetIsIdempotent(t *testing.T) {
	g := NewGlass(DefaultPourRules())
	_ = g.Pour("mint", false)
	_ = g.Stir()

	g.Reset()
	if g.Len() != 0 || g.StirCount() != 0 {
		t.Fatalf("reset left state: len=%d stirs=%d", g.Len(), g.StirCount())
	}
	g.Reset()
	if g.Len() != 0 || g.StirCount() != 0 {
		t.Fatalf("double reset differs: len=%d stirs=%d", g.Len(), g.StirCount())
	}
}
