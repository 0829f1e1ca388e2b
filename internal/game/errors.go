package game

import "errors"

// Sentinel errors for the recoverable gameplay conditions. Callers branch on
// these with errors.Is; none of them terminates a session.
var (
	ErrNotRunning       = errors.New("level is not running")
	ErrGlassFull        = errors.New("glass is full")
	ErrFlipRequired     = errors.New("bottle must be flipped before pouring")
	ErrGlassEmpty       = errors.New("glass is empty")
	ErrAlreadyCompleted = errors.New("level already completed")
	ErrAlreadyRunning   = errors.New("level already in progress")
	ErrNotPaused        = errors.New("level is not paused")
)
