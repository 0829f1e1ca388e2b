package app

import "errors"

var (
	// ErrPromptPending rejects mutating operations while a yes/no prompt
	// awaits the player's answer.
	ErrPromptPending = errors.New("confirmation pending")
	// ErrLevelLocked rejects navigation past a level that has not been
	// completed yet.
	ErrLevelLocked = errors.New("level not completed")
	// ErrFirstLevel rejects backward navigation from level 1.
	ErrFirstLevel = errors.New("already at the first level")
	// ErrAllLevelsComplete signals that no higher level exists to load.
	ErrAllLevelsComplete = errors.New("all levels complete")
	// ErrNoPrompt rejects a resolution for a prompt that is not
	// outstanding.
	ErrNoPrompt = errors.New("no prompt outstanding")
)
