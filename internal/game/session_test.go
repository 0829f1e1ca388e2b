package game

import (
	"errors"
	"testing"
)

func newTestSession() *Session {
	return NewSession(1, mojito(), DefaultPourRules())
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestSession()
	if s.Phase() != PhaseNotStarted {
		t.Fatalf("new session phase = %v", s.Phase())
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Phase() != PhaseRunning {
		t.Fatalf("phase after start = %v", s.Phase())
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second start: %v", err)
	}
	if err := s.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := s.Pause(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("pause while paused: %v", err)
	}
	if err := s.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if s.Phase() != PhaseRunning {
		t.Fatalf("phase after resume = %v", s.Phase())
	}
}

func TestMutationGatedOnRunning(t *testing.T) {
	s := newTestSession()
	if err := s.Pour("mint", false); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("pour before start: %v", err)
	}
	if err := s.Stir(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("stir before start: %v", err)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("submit before start: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.Pour("mint", false); err != nil {
		t.Fatalf("pour while running: %v", err)
	}

	if err := s.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := s.Pour("lime", false); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("pour while paused: %v", err)
	}
	if s.Glass().Len() != 1 {
		t.Fatalf("rejected pour changed the glass: len=%d", s.Glass().Len())
	}
}

func TestTickRejectedOutsideRunning(t *testing.T) {
	s := newTestSession()
	if _, err := s.Tick(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("tick before start: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	if err := s.Pause(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Tick(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("tick while paused: %v", err)
	}
	if s.Elapsed() != 1 {
		t.Fatalf("paused tick advanced the clock: elapsed=%d", s.Elapsed())
	}
}

func TestTimeoutTransition(t *testing.T) {
	recipe := mojito()
	recipe.TimeLimitSeconds = 3
	s := NewSession(1, recipe, DefaultPourRules())
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		timedOut, err := s.Tick()
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if timedOut {
			t.Fatalf("timed out early at tick %d", i)
		}
	}
	timedOut, err := s.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if !timedOut || s.Phase() != PhaseTimedOut {
		t.Fatalf("expected timeout, phase=%v", s.Phase())
	}

	// No further tick advances the clock.
	if _, err := s.Tick(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("tick after timeout: %v", err)
	}
	if s.Elapsed() != 3 {
		t.Fatalf("elapsed moved after timeout: %d", s.Elapsed())
	}
}

func TestSubmitEmptyGlass(t *testing.T) {
	s := newTestSession()
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrGlassEmpty) {
		t.Fatalf("expected ErrGlassEmpty, got %v", err)
	}
	if s.Phase() != PhaseRunning {
		t.Fatalf("invalid submit changed phase to %v", s.Phase())
	}
}

func TestSubmitSuccessCompletes(t *testing.T) {
	s := newTestSession()
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	pourMojito(t, s.Glass())
	for i := 0; i < 3; i++ {
		if err := s.Stir(); err != nil {
			t.Fatal(err)
		}
	}
	v, err := s.Submit()
	if err != nil {
		t.Fatal(err)
	}
	if !v.Success() || s.Phase() != PhaseCompleted {
		t.Fatalf("expected completion, verdict=%#v phase=%v", v, s.Phase())
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("start after completion: %v", err)
	}
}

func TestSubmitFailureIsTransient(t *testing.T) {
	s := newTestSession()
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.Pour("mint", false); err != nil {
		t.Fatal(err)
	}
	v, err := s.Submit()
	if err != nil {
		t.Fatal(err)
	}
	if v.Success() || s.Phase() != PhaseFailed {
		t.Fatalf("expected failed verdict, got %#v phase=%v", v, s.Phase())
	}

	// Decline retry: glass kept for inspection, phase back to NotStarted.
	s.Dismiss()
	if s.Phase() != PhaseNotStarted {
		t.Fatalf("dismiss phase = %v", s.Phase())
	}
	if s.Glass().Len() != 1 {
		t.Fatalf("dismiss must keep the glass, len=%d", s.Glass().Len())
	}

	// Retry path clears it.
	s.Reset()
	if s.Glass().Len() != 0 || s.Glass().StirCount() != 0 {
		t.Fatalf("reset left glass state")
	}
}

func TestResetRetainsTimeLimit(t *testing.T) {
	recipe := mojito()
	recipe.TimeLimitSeconds = 45
	s := NewSession(1, recipe, DefaultPourRules())
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	s.Reset()
	if s.Phase() != PhaseNotStarted || s.Elapsed() != 0 {
		t.Fatalf("reset state: phase=%v elapsed=%d", s.Phase(), s.Elapsed())
	}
	if s.TimeLimit() != 45 {
		t.Fatalf("reset must retain the time limit, got %d", s.TimeLimit())
	}
}

func TestReplayFlag(t *testing.T) {
	s := newTestSession()
	if s.Replay() {
		t.Fatalf("fresh session marked replay")
	}
	s.MarkReplay()
	if !s.Replay() {
		t.Fatalf("replay flag not set")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("replay start: %v", err)
	}
}
