// Package progress tracks per-level and aggregate play statistics and
// persists them across sessions.
package progress

import "time"

// LevelStats accumulates over the whole play history of one level. It is
// only mutated at attempt and completion boundaries, and only cleared by an
// explicit full-game restart.
type LevelStats struct {
	Completed        bool       `json:"completed"`
	BestTimeSeconds  *int       `json:"bestTime"`
	Attempts         int        `json:"attempts"`
	TotalTimeSeconds int        `json:"totalTime"`
	RecipeName       string     `json:"cocktailName,omitempty"`
	LastPlayed       *time.Time `json:"lastPlayed,omitempty"`
}

// Snapshot is the persisted root of game progress. It round-trips through
// the JSON codec and the SQLite store.
type Snapshot struct {
	CurrentLevel    int                `json:"currentLevel"`
	CompletedLevels []int              `json:"completedLevels"`
	LevelStats      map[int]LevelStats `json:"levelStats"`
	OverallBestTime *int               `json:"overallBestTime"`
}

// DefaultSnapshot returns fresh progress: level 1, nothing completed.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		CurrentLevel:    1,
		CompletedLevels: []int{},
		LevelStats:      map[int]LevelStats{},
	}
}

// Overview is the aggregate statistics block shown by the UI.
type Overview struct {
	TotalLevels     int
	CompletedLevels int
	TotalAttempts   int
	// SuccessRate is completed levels / total levels, in percent. Per-level
	// success figures derive from the same rule; attempts never enter it.
	SuccessRate        int
	AverageTimeSeconds int
	OverallBestTime    *int
}

// LevelRow is one line of the detailed per-level statistics view.
type LevelRow struct {
	Level           int
	Name            string
	Completed       bool
	BestTimeSeconds *int
	Attempts        int
	SuccessRate     int
}
