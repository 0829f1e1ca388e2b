package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"barmix/internal/catalog"
	"barmix/internal/game"
	"barmix/internal/progress"
	"barmix/internal/telemetry"

	"github.com/google/uuid"
)

// Controller composes the catalog, the live session, and the progress
// tracker, and exposes the operations the UI layer calls. All game mutation
// funnels through it; the mutex serializes UI events against the timer
// goroutine.
type Controller struct {
	mu sync.Mutex

	catalog  *catalog.Catalog
	rules    game.PourRules
	tracker  *progress.Tracker
	store    progress.Store
	logger   *telemetry.JSONLogger
	listener Listener

	session *game.Session

	tickInterval time.Duration
	tickCancel   context.CancelFunc

	pending *Prompt
}

// ControllerDeps carries everything a Controller composes. Catalog, Tracker,
// and Store are required.
type ControllerDeps struct {
	Catalog      *catalog.Catalog
	Rules        game.PourRules
	Tracker      *progress.Tracker
	Store        progress.Store
	Logger       *telemetry.JSONLogger
	Listener     Listener
	TickInterval time.Duration
}

func NewController(d ControllerDeps) (*Controller, error) {
	if d.Catalog == nil || d.Catalog.Len() == 0 {
		return nil, fmt.Errorf("empty recipe catalog")
	}
	if d.Tracker == nil || d.Store == nil {
		return nil, fmt.Errorf("tracker and store are required")
	}
	if d.TickInterval <= 0 {
		d.TickInterval = time.Second
	}
	c := &Controller{
		catalog:      d.Catalog,
		rules:        d.Rules,
		tracker:      d.Tracker,
		store:        d.Store,
		logger:       d.Logger,
		listener:     d.Listener,
		tickInterval: d.TickInterval,
	}
	if err := c.buildSession(d.Tracker.CurrentLevel()); err != nil {
		return nil, err
	}
	return c, nil
}

// buildSession replaces the live session with a fresh one for level index.
// Caller holds the lock (or is the constructor).
func (c *Controller) buildSession(index int) error {
	recipe, err := c.catalog.ByLevel(index)
	if err != nil {
		return err
	}
	c.stopTickerLocked()
	c.session = game.NewSession(index, recipe, c.rules)
	c.tracker.SetCurrentLevel(index)
	return nil
}

// LoadLevel switches to the given level without starting the timer. An
// index below 1 clamps to 1; an index past the last level is rejected with
// ErrAllLevelsComplete.
func (c *Controller) LoadLevel(index int) error {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return ErrPromptPending
	}
	if index > c.catalog.Len() {
		c.mu.Unlock()
		return ErrAllLevelsComplete
	}
	if index < 1 {
		index = 1
	}
	if err := c.buildSession(index); err != nil {
		c.mu.Unlock()
		return err
	}
	c.persistLocked()
	c.logger.Info("level.loaded", map[string]any{"level": index, "cocktail": c.session.Recipe().Name})
	events := []listenerEvent{phaseEvent(index, game.PhaseNotStarted)}
	c.mu.Unlock()
	c.emit(events)
	return nil
}

// StartLevel begins the attempt. A level already completed in a previous
// run stays gated until RequestReplay is granted.
func (c *Controller) StartLevel() error {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return ErrPromptPending
	}
	level := c.session.LevelIndex()
	if c.tracker.Completed(level) && !c.session.Replay() {
		c.mu.Unlock()
		return game.ErrAlreadyCompleted
	}
	if err := c.session.Start(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.startTickerLocked()
	c.logger.Info("level.started", map[string]any{
		"level":    level,
		"cocktail": c.session.Recipe().Name,
		"replay":   c.session.Replay(),
		"limit_s":  c.session.TimeLimit(),
	})
	events := []listenerEvent{phaseEvent(level, game.PhaseRunning)}
	c.mu.Unlock()
	c.emit(events)
	return nil
}

// PauseLevel suspends the timer.
func (c *Controller) PauseLevel() error {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return ErrPromptPending
	}
	if err := c.session.Pause(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.stopTickerLocked()
	events := []listenerEvent{phaseEvent(c.session.LevelIndex(), game.PhasePaused)}
	c.mu.Unlock()
	c.emit(events)
	return nil
}

// ResumeLevel restarts the timer from where it paused.
func (c *Controller) ResumeLevel() error {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return ErrPromptPending
	}
	if err := c.session.Resume(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.startTickerLocked()
	events := []listenerEvent{phaseEvent(c.session.LevelIndex(), game.PhaseRunning)}
	c.mu.Unlock()
	c.emit(events)
	return nil
}

// Pour adds one ingredient to the glass; legal only while running.
func (c *Controller) Pour(t game.IngredientType, flipped bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return ErrPromptPending
	}
	err := c.session.Pour(t, flipped)
	if err == nil {
		c.logger.Debug("glass.pour", map[string]any{
			"level":      c.session.LevelIndex(),
			"ingredient": string(t),
			"flipped":    flipped,
			"count":      c.session.Glass().Len(),
		})
	}
	return err
}

// Stir increments the stir count; legal only while running.
func (c *Controller) Stir() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return ErrPromptPending
	}
	err := c.session.Stir()
	if err == nil {
		c.logger.Debug("glass.stir", map[string]any{
			"level": c.session.LevelIndex(),
			"stirs": c.session.Glass().StirCount(),
		})
	}
	return err
}

// SubmitSolution validates the glass against the recipe. Success records
// the completion; failure records the attempt and asks whether to retry.
func (c *Controller) SubmitSolution() (game.Verdict, error) {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return game.Verdict{}, ErrPromptPending
	}
	level := c.session.LevelIndex()
	elapsed := c.session.Elapsed()
	name := c.session.Recipe().Name
	verdict, err := c.session.Submit()
	if err != nil {
		c.mu.Unlock()
		return game.Verdict{}, err
	}
	c.stopTickerLocked()

	events := []listenerEvent{func(l Listener) { l.VerdictReady(level, verdict) }}
	if verdict.Success() {
		newRecord := c.tracker.RecordAttempt(level, elapsed, true, name)
		c.persistLocked()
		all := c.tracker.AllComplete()
		c.logger.Info("level.completed", map[string]any{
			"level": level, "cocktail": name, "elapsed_s": elapsed, "record": newRecord,
		})
		events = append(events, phaseEvent(level, game.PhaseCompleted))
		if newRecord {
			events = append(events, func(l Listener) { l.NewRecord(level, elapsed) })
		}
		events = append(events, func(l Listener) { l.LevelComplete(level, all) })
	} else {
		c.tracker.RecordAttempt(level, elapsed, false, name)
		c.persistLocked()
		c.logger.Info("level.failed", map[string]any{
			"level": level, "cocktail": name, "elapsed_s": elapsed, "reason": verdict.Reason.String(),
		})
		events = append(events, phaseEvent(level, game.PhaseFailed))
		p := c.beginPromptLocked(PromptRetryFailed, level, "Wrong mix. Try again?")
		events = append(events, func(l Listener) { l.PromptRequested(p) })
	}
	c.mu.Unlock()
	c.emit(events)
	return verdict, nil
}

// AdvanceLevel moves to the next level, gated on the current one being
// completed.
func (c *Controller) AdvanceLevel() error {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return ErrPromptPending
	}
	current := c.session.LevelIndex()
	if !c.tracker.Completed(current) {
		c.mu.Unlock()
		return ErrLevelLocked
	}
	if current+1 > c.catalog.Len() {
		c.mu.Unlock()
		return ErrAllLevelsComplete
	}
	c.mu.Unlock()
	return c.LoadLevel(current + 1)
}

// PreviousLevel moves one level back. Both the current and the target
// level must already be completed; backward navigation never reopens
// gated levels.
func (c *Controller) PreviousLevel() error {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return ErrPromptPending
	}
	current := c.session.LevelIndex()
	if current <= 1 {
		c.mu.Unlock()
		return ErrFirstLevel
	}
	if !c.tracker.Completed(current) || !c.tracker.Completed(current-1) {
		c.mu.Unlock()
		return ErrLevelLocked
	}
	c.mu.Unlock()
	return c.LoadLevel(current - 1)
}

// RequestReplay asks the player to confirm replaying the current,
// already-completed level. Granting it unlocks the next StartLevel.
func (c *Controller) RequestReplay() error {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return ErrPromptPending
	}
	level := c.session.LevelIndex()
	if !c.tracker.Completed(level) {
		c.mu.Unlock()
		return ErrLevelLocked
	}
	p := c.beginPromptLocked(PromptReplayLevel, level, "Replay this cocktail?")
	c.mu.Unlock()
	c.emit([]listenerEvent{func(l Listener) { l.PromptRequested(p) }})
	return nil
}

// ResetGlass empties the glass mid-attempt without touching the timer.
func (c *Controller) ResetGlass() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return ErrPromptPending
	}
	if c.session.Phase() != game.PhaseRunning {
		return game.ErrNotRunning
	}
	c.session.Glass().Reset()
	return nil
}

// ResetLevel asks for confirmation, then discards the attempt and returns
// to NotStarted.
func (c *Controller) ResetLevel() error {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return ErrPromptPending
	}
	p := c.beginPromptLocked(PromptResetLevel, c.session.LevelIndex(), "Discard this attempt?")
	c.mu.Unlock()
	c.emit([]listenerEvent{func(l Listener) { l.PromptRequested(p) }})
	return nil
}

// RestartGame asks for confirmation, then wipes all progress and returns
// to level 1.
func (c *Controller) RestartGame() error {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return ErrPromptPending
	}
	p := c.beginPromptLocked(PromptRestartGame, c.session.LevelIndex(), "Erase all progress and start over?")
	c.mu.Unlock()
	c.emit([]listenerEvent{func(l Listener) { l.PromptRequested(p) }})
	return nil
}

// ResolvePrompt answers the outstanding prompt. A no answer always leaves
// durable state untouched.
func (c *Controller) ResolvePrompt(id string, yes bool) error {
	c.mu.Lock()
	if c.pending == nil || c.pending.ID != id {
		c.mu.Unlock()
		return ErrNoPrompt
	}
	p := *c.pending
	c.pending = nil
	c.logger.Info("prompt.resolved", map[string]any{"kind": p.Kind.String(), "yes": yes})

	var events []listenerEvent
	if yes {
		switch p.Kind {
		case PromptRetryFailed, PromptRetryTimeout, PromptResetLevel:
			c.stopTickerLocked()
			c.session.Reset()
			events = append(events, phaseEvent(c.session.LevelIndex(), game.PhaseNotStarted))
		case PromptReplayLevel:
			c.stopTickerLocked()
			c.session.Reset()
			c.session.MarkReplay()
			events = append(events, phaseEvent(c.session.LevelIndex(), game.PhaseNotStarted))
		case PromptRestartGame:
			c.tracker.ResetAll()
			if err := c.buildSession(1); err != nil {
				c.mu.Unlock()
				return err
			}
			c.persistLocked()
			events = append(events, phaseEvent(1, game.PhaseNotStarted))
		}
	} else if p.Kind == PromptRetryFailed {
		// Declined retry keeps the glass populated for inspection.
		c.session.Dismiss()
		events = append(events, phaseEvent(c.session.LevelIndex(), game.PhaseNotStarted))
	}
	c.mu.Unlock()
	c.emit(events)
	return nil
}

// CancelPrompt dismisses the outstanding prompt; cancellation counts as a
// no answer.
func (c *Controller) CancelPrompt(id string) error {
	return c.ResolvePrompt(id, false)
}

// PendingPrompt returns a copy of the outstanding prompt, if any.
func (c *Controller) PendingPrompt() *Prompt {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	p := *c.pending
	return &p
}

// tick advances game time by one second. Ticks that race a phase change
// are rejected by the session and dropped here.
func (c *Controller) tick() {
	c.mu.Lock()
	timedOut, err := c.session.Tick()
	if err != nil {
		c.mu.Unlock()
		return
	}
	level := c.session.LevelIndex()
	remaining := c.session.Remaining()
	events := []listenerEvent{func(l Listener) { l.TimeRemaining(level, remaining) }}
	if timedOut {
		c.stopTickerLocked()
		elapsed := c.session.Elapsed()
		c.tracker.RecordAttempt(level, elapsed, false, c.session.Recipe().Name)
		c.persistLocked()
		c.logger.Info("level.timed_out", map[string]any{"level": level, "elapsed_s": elapsed})
		events = append(events, phaseEvent(level, game.PhaseTimedOut))
		if c.pending == nil {
			p := c.beginPromptLocked(PromptRetryTimeout, level, "Time's up! Try again?")
			events = append(events, func(l Listener) { l.PromptRequested(p) })
		}
	}
	c.mu.Unlock()
	c.emit(events)
}

// startTickerLocked launches the one-second timer goroutine. At most one
// runs at a time; every transition away from Running cancels it.
func (c *Controller) startTickerLocked() {
	c.stopTickerLocked()
	ctx, cancel := context.WithCancel(context.Background())
	c.tickCancel = cancel
	interval := c.tickInterval
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c.tick()
			}
		}
	}()
}

func (c *Controller) stopTickerLocked() {
	if c.tickCancel != nil {
		c.tickCancel()
		c.tickCancel = nil
	}
}

func (c *Controller) beginPromptLocked(kind PromptKind, level int, question string) Prompt {
	p := Prompt{ID: uuid.NewString(), Kind: kind, Level: level, Question: question}
	c.pending = &p
	return p
}

func (c *Controller) persistLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.store.SaveSnapshot(ctx, c.tracker.Snapshot()); err != nil {
		c.logger.Error("progress.save_failed", map[string]any{"error": err.Error()})
	}
}

type listenerEvent func(Listener)

func phaseEvent(level int, phase game.Phase) listenerEvent {
	return func(l Listener) { l.PhaseChanged(level, phase) }
}

func (c *Controller) emit(events []listenerEvent) {
	if c.listener == nil {
		return
	}
	for _, ev := range events {
		ev(c.listener)
	}
}

// CurrentLevel returns the live session's 1-based level index.
func (c *Controller) CurrentLevel() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.LevelIndex()
}

// TotalLevels returns the catalog size.
func (c *Controller) TotalLevels() int { return c.catalog.Len() }

// Phase returns the live session's phase.
func (c *Controller) Phase() game.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Phase()
}

// Remaining returns the seconds left on the clock.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Remaining()
}

// Recipe returns the active level's recipe.
func (c *Controller) Recipe() game.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Recipe()
}

// GlassContents returns a copy of the poured sequence.
func (c *Controller) GlassContents() []game.PouredIngredient {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Glass().Contents()
}

// StirCount returns the current attempt's stir count.
func (c *Controller) StirCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Glass().StirCount()
}

// PourSensitive reports whether the ingredient type needs a flipped bottle.
func (c *Controller) PourSensitive(t game.IngredientType) bool {
	return c.rules.PourSensitive(t)
}

// Completed reports whether the level has ever been completed.
func (c *Controller) Completed(level int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Completed(level)
}

// Replay reports whether the next start of the current level is a replay.
func (c *Controller) Replay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Replay()
}

// Overview returns the aggregate statistics block.
func (c *Controller) Overview() progress.Overview {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Overview()
}

// LevelRows returns the per-level statistics table, with names resolved
// from the catalog for levels never attempted.
func (c *Controller) LevelRows() []progress.LevelRow {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.LevelRows(func(level int) string {
		r, err := c.catalog.ByLevel(level)
		if err != nil {
			return ""
		}
		return r.Name
	})
}

// Close stops the timer, persists progress, and releases the store.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopTickerLocked()
	c.persistLocked()
	c.mu.Unlock()
	_ = c.store.Close()
	_ = c.logger.Close()
}
