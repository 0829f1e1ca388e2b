package game

// Phase is the state of a level attempt.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseTimedOut
	PhaseCompleted
	PhaseFailed
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseTimedOut:
		return "timed out"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is the state machine for one level attempt. Exactly one session is
// live at a time; the controller owns it. Gameplay mutation (pour, stir) is
// legal only while the phase is PhaseRunning.
type Session struct {
	levelIndex int
	recipe     Recipe
	glass      *Glass
	rules      PourRules

	elapsed int
	limit   int
	phase   Phase

	// replay marks that the next Start is a rerun of an already-completed
	// level. Purely a label; attempt recording is identical either way.
	replay bool
}

// NewSession creates a fresh session for the given 1-based level index.
func NewSession(levelIndex int, recipe Recipe, rules PourRules) *Session {
	limit := recipe.TimeLimitSeconds
	if limit <= 0 {
		limit = 60
	}
	return &Session{
		levelIndex: levelIndex,
		recipe:     recipe,
		glass:      NewGlass(rules),
		rules:      rules,
		limit:      limit,
		phase:      PhaseNotStarted,
	}
}

// LevelIndex returns the 1-based level index this session plays.
func (s *Session) LevelIndex() int { return s.levelIndex }

// Recipe returns the target recipe.
func (s *Session) Recipe() Recipe { return s.recipe }

// Glass returns the live glass. Mutations still go through Pour/Stir so the
// phase gate applies.
func (s *Session) Glass() *Glass { return s.glass }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Elapsed returns whole seconds spent in the attempt so far.
func (s *Session) Elapsed() int { return s.elapsed }

// TimeLimit returns the attempt's limit in seconds.
func (s *Session) TimeLimit() int { return s.limit }

// Remaining returns the seconds left before timeout, never negative.
func (s *Session) Remaining() int {
	if r := s.limit - s.elapsed; r > 0 {
		return r
	}
	return 0
}

// MarkReplay flags the next Start as a replay of a completed level.
func (s *Session) MarkReplay() { s.replay = true }

// Replay reports whether the session was flagged as a replay.
func (s *Session) Replay() bool { return s.replay }

// Start begins the attempt. Only legal from PhaseNotStarted.
func (s *Session) Start() error {
	switch s.phase {
	case PhaseNotStarted:
		s.glass.Reset()
		s.elapsed = 0
		s.phase = PhaseRunning
		return nil
	case PhaseRunning, PhasePaused:
		return ErrAlreadyRunning
	case PhaseCompleted:
		return ErrAlreadyCompleted
	default:
		return ErrNotRunning
	}
}

// Pause suspends a running attempt.
func (s *Session) Pause() error {
	if s.phase != PhaseRunning {
		return ErrNotRunning
	}
	s.phase = PhasePaused
	return nil
}

// Resume continues a paused attempt.
func (s *Session) Resume() error {
	if s.phase != PhasePaused {
		return ErrNotPaused
	}
	s.phase = PhaseRunning
	return nil
}

// Tick advances the clock by one second. Ticks outside PhaseRunning are
// rejected, which is what makes an orphaned ticker harmless as well as a bug.
// Returns true when this tick crossed the time limit; the session is then in
// PhaseTimedOut and stays there until an explicit reset.
func (s *Session) Tick() (timedOut bool, err error) {
	if s.phase != PhaseRunning {
		return false, ErrNotRunning
	}
	s.elapsed++
	if s.elapsed >= s.limit {
		s.phase = PhaseTimedOut
		return true, nil
	}
	return false, nil
}

// Pour routes to the glass with the phase gate applied.
func (s *Session) Pour(t IngredientType, flipped bool) error {
	if s.phase != PhaseRunning {
		return ErrNotRunning
	}
	return s.glass.Pour(t, flipped)
}

// Stir routes to the glass with the phase gate applied.
func (s *Session) Stir() error {
	if s.phase != PhaseRunning {
		return ErrNotRunning
	}
	return s.glass.Stir()
}

// Submit validates the glass against the recipe. It requires a running phase
// and a non-empty glass; neither failure changes the phase. On success the
// session completes; on a failed verdict it moves to the transient
// PhaseFailed, from which Reset (retry) or Dismiss (inspect) exits.
func (s *Session) Submit() (Verdict, error) {
	if s.phase != PhaseRunning {
		return Verdict{}, ErrNotRunning
	}
	if s.glass.Empty() {
		return Verdict{}, ErrGlassEmpty
	}
	v := Validate(s.glass, s.recipe, s.rules)
	if v.Success() {
		s.phase = PhaseCompleted
	} else {
		s.phase = PhaseFailed
	}
	return v, nil
}

// Dismiss leaves a failed or timed-out attempt without retrying: the phase
// returns to PhaseNotStarted but the glass is kept for inspection.
func (s *Session) Dismiss() {
	s.elapsed = 0
	s.phase = PhaseNotStarted
}

// Reset discards the attempt from any phase: glass cleared, clock zeroed,
// time limit retained.
func (s *Session) Reset() {
	s.glass.Reset()
	s.elapsed = 0
	s.phase = PhaseNotStarted
}
