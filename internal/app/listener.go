package app

import "barmix/internal/game"

// PromptKind names the yes/no decisions the controller can ask for.
type PromptKind int

const (
	// PromptRetryFailed asks whether to retry after a failed submission.
	// Yes clears the glass and returns to NotStarted; no keeps the glass
	// populated for inspection.
	PromptRetryFailed PromptKind = iota
	// PromptRetryTimeout asks whether to retry after the timer ran out.
	PromptRetryTimeout
	// PromptReplayLevel asks whether to replay an already-completed level.
	PromptReplayLevel
	// PromptResetLevel confirms discarding the current attempt.
	PromptResetLevel
	// PromptRestartGame confirms wiping all progress.
	PromptRestartGame
)

func (k PromptKind) String() string {
	switch k {
	case PromptRetryFailed:
		return "retry_failed"
	case PromptRetryTimeout:
		return "retry_timeout"
	case PromptReplayLevel:
		return "replay_level"
	case PromptResetLevel:
		return "reset_level"
	case PromptRestartGame:
		return "restart_game"
	default:
		return "unknown"
	}
}

// Prompt is an outstanding yes/no question. The controller suspends the
// affected flow until ResolvePrompt answers it; cancelling counts as no.
type Prompt struct {
	ID       string
	Kind     PromptKind
	Level    int
	Question string
}

// Listener receives the controller's signals. Calls arrive outside the
// controller lock, so a listener may call back into the controller.
type Listener interface {
	PhaseChanged(level int, phase game.Phase)
	TimeRemaining(level, remainingSeconds int)
	VerdictReady(level int, verdict game.Verdict)
	NewRecord(level, seconds int)
	LevelComplete(level int, allComplete bool)
	PromptRequested(p Prompt)
}

// NopListener discards every signal. Embed it to implement only part of
// the interface.
type NopListener struct{}

func (NopListener) PhaseChanged(int, game.Phase)   {}
func (NopListener) TimeRemaining(int, int)         {}
func (NopListener) VerdictReady(int, game.Verdict) {}
func (NopListener) NewRecord(int, int)             {}
func (NopListener) LevelComplete(int, bool)        {}
func (NopListener) PromptRequested(Prompt)         {}

var _ Listener = NopListener{}
