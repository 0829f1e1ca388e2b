package ui

import (
	"barmix/internal/game"
	"barmix/internal/progress"
)

// Controller is the surface of game operations the view calls. The app
// controller satisfies it; tests substitute a fake.
type Controller interface {
	LoadLevel(index int) error
	StartLevel() error
	PauseLevel() error
	ResumeLevel() error
	Pour(t game.IngredientType, flipped bool) error
	Stir() error
	SubmitSolution() (game.Verdict, error)
	AdvanceLevel() error
	PreviousLevel() error
	RequestReplay() error
	ResetGlass() error
	ResetLevel() error
	RestartGame() error
	ResolvePrompt(id string, yes bool) error
	CancelPrompt(id string) error

	CurrentLevel() int
	TotalLevels() int
	Phase() game.Phase
	Remaining() int
	Recipe() game.Recipe
	GlassContents() []game.PouredIngredient
	StirCount() int
	PourSensitive(t game.IngredientType) bool
	Completed(level int) bool
	Replay() bool
	Overview() progress.Overview
	LevelRows() []progress.LevelRow
}

// Screen selects the top-level view.
type Screen int

const (
	ScreenPlaying Screen = iota
	ScreenStats
	ScreenRecipeBook
)
