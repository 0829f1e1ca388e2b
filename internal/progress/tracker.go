package progress

import (
	"sort"
	"time"
)

// Tracker owns the in-memory progress state and the recording rules. It is
// not safe for concurrent use; the controller serializes access.
type Tracker struct {
	totalLevels int
	snap        Snapshot
	now         func() time.Time
}

// NewTracker builds a tracker over a loaded snapshot, clamping the current
// level into [1, totalLevels] and reconciling the completed-level set with
// the per-level completed flags.
func NewTracker(totalLevels int, snap Snapshot) *Tracker {
	if snap.LevelStats == nil {
		snap.LevelStats = map[int]LevelStats{}
	}
	if snap.CompletedLevels == nil {
		snap.CompletedLevels = []int{}
	}
	if snap.CurrentLevel < 1 {
		snap.CurrentLevel = 1
	}
	if totalLevels > 0 && snap.CurrentLevel > totalLevels {
		snap.CurrentLevel = totalLevels
	}
	t := &Tracker{totalLevels: totalLevels, snap: snap, now: time.Now}
	t.reconcile()
	return t
}

// reconcile keeps CompletedLevels and LevelStats.Completed consistent: a
// level counts as completed if either source says so.
func (t *Tracker) reconcile() {
	set := map[int]bool{}
	for _, lvl := range t.snap.CompletedLevels {
		set[lvl] = true
	}
	for lvl, st := range t.snap.LevelStats {
		if st.Completed {
			set[lvl] = true
		} else if set[lvl] {
			st.Completed = true
			t.snap.LevelStats[lvl] = st
		}
	}
	levels := make([]int, 0, len(set))
	for lvl := range set {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)
	t.snap.CompletedLevels = levels
}

// Snapshot returns a deep copy of the current progress for persistence.
func (t *Tracker) Snapshot() Snapshot {
	out := Snapshot{
		CurrentLevel:    t.snap.CurrentLevel,
		CompletedLevels: append([]int{}, t.snap.CompletedLevels...),
		LevelStats:      make(map[int]LevelStats, len(t.snap.LevelStats)),
	}
	for lvl, st := range t.snap.LevelStats {
		out.LevelStats[lvl] = st
	}
	if t.snap.OverallBestTime != nil {
		v := *t.snap.OverallBestTime
		out.OverallBestTime = &v
	}
	return out
}

// CurrentLevel returns the persisted current level index.
func (t *Tracker) CurrentLevel() int { return t.snap.CurrentLevel }

// SetCurrentLevel clamps and stores the current level index.
func (t *Tracker) SetCurrentLevel(index int) {
	if index < 1 {
		index = 1
	}
	if t.totalLevels > 0 && index > t.totalLevels {
		index = t.totalLevels
	}
	t.snap.CurrentLevel = index
}

// TotalLevels returns the catalog size the tracker was built for.
func (t *Tracker) TotalLevels() int { return t.totalLevels }

// Completed reports whether the level has ever been completed.
func (t *Tracker) Completed(level int) bool {
	for _, lvl := range t.snap.CompletedLevels {
		if lvl == level {
			return true
		}
	}
	return false
}

// AllComplete reports whether every catalog level is completed.
func (t *Tracker) AllComplete() bool {
	return t.totalLevels > 0 && len(t.snap.CompletedLevels) >= t.totalLevels
}

// RecordAttempt folds one finished attempt into the stats. Both successful
// and failed attempts count toward attempts and total time; only success
// touches completion and best times. Returns true when the attempt set a new
// overall record, which the caller surfaces as a celebration.
func (t *Tracker) RecordAttempt(level, elapsedSeconds int, succeeded bool, recipeName string) (newRecord bool) {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	st := t.snap.LevelStats[level]
	st.Attempts++
	st.TotalTimeSeconds += elapsedSeconds
	if recipeName != "" {
		st.RecipeName = recipeName
	}
	now := t.now().UTC()
	st.LastPlayed = &now

	if succeeded {
		st.Completed = true
		if st.BestTimeSeconds == nil || elapsedSeconds < *st.BestTimeSeconds {
			v := elapsedSeconds
			st.BestTimeSeconds = &v
		}
		if t.snap.OverallBestTime == nil || elapsedSeconds < *t.snap.OverallBestTime {
			v := elapsedSeconds
			t.snap.OverallBestTime = &v
			newRecord = true
		}
	}

	t.snap.LevelStats[level] = st
	if succeeded && !t.Completed(level) {
		t.snap.CompletedLevels = append(t.snap.CompletedLevels, level)
		sort.Ints(t.snap.CompletedLevels)
	}
	return newRecord
}

// ResetAll wipes every statistic and returns progress to level 1. Only an
// explicit full-game restart calls this.
func (t *Tracker) ResetAll() {
	t.snap = DefaultSnapshot()
}

// Stats returns the stored stats for one level.
func (t *Tracker) Stats(level int) LevelStats {
	return t.snap.LevelStats[level]
}

// Overview computes the aggregate statistics block.
func (t *Tracker) Overview() Overview {
	o := Overview{
		TotalLevels:     t.totalLevels,
		CompletedLevels: len(t.snap.CompletedLevels),
		OverallBestTime: t.snap.OverallBestTime,
	}
	totalTime := 0
	for _, st := range t.snap.LevelStats {
		o.TotalAttempts += st.Attempts
		totalTime += st.TotalTimeSeconds
	}
	if t.totalLevels > 0 {
		o.SuccessRate = o.CompletedLevels * 100 / t.totalLevels
	}
	if o.TotalAttempts > 0 {
		o.AverageTimeSeconds = totalTime / o.TotalAttempts
	}
	return o
}

// LevelRows builds the detailed per-level statistics table. name resolves a
// level index to a display name for levels never attempted.
func (t *Tracker) LevelRows(name func(level int) string) []LevelRow {
	rows := make([]LevelRow, 0, t.totalLevels)
	for lvl := 1; lvl <= t.totalLevels; lvl++ {
		st := t.snap.LevelStats[lvl]
		row := LevelRow{
			Level:           lvl,
			Name:            st.RecipeName,
			Completed:       st.Completed,
			BestTimeSeconds: st.BestTimeSeconds,
			Attempts:        st.Attempts,
		}
		if row.Name == "" && name != nil {
			row.Name = name(lvl)
		}
		if st.Completed {
			row.SuccessRate = 100
		}
		rows = append(rows, row)
	}
	return rows
}
