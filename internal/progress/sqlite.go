package progress

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists progress in a local SQLite database. The snapshot is
// written wholesale after every state-affecting operation; the data set is a
// handful of rows, so replace-on-save inside one transaction keeps the
// tables trivially consistent.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens (creating if needed) the database at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// EnsureSchema creates the tables on first run.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS level_stats (
			level INTEGER PRIMARY KEY,
			recipe_name TEXT NOT NULL DEFAULT '',
			completed INTEGER NOT NULL DEFAULT 0,
			best_time_s INTEGER,
			attempts INTEGER NOT NULL DEFAULT 0,
			total_time_s INTEGER NOT NULL DEFAULT 0,
			last_played_ts TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS completed_levels (
			level INTEGER PRIMARY KEY
		);`,
		`CREATE TABLE IF NOT EXISTS game_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SaveSnapshot replaces the stored progress with snap.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"level_stats", "completed_levels"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}

	for level, st := range snap.LevelStats {
		var best sql.NullInt64
		if st.BestTimeSeconds != nil {
			best = sql.NullInt64{Int64: int64(*st.BestTimeSeconds), Valid: true}
		}
		lastPlayed := ""
		if st.LastPlayed != nil {
			lastPlayed = st.LastPlayed.UTC().Format(timeLayout)
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO level_stats(level, recipe_name, completed, best_time_s, attempts, total_time_s, last_played_ts)
			VALUES(?, ?, ?, ?, ?, ?, ?)
		`, level, st.RecipeName, boolToInt(st.Completed), best, st.Attempts, st.TotalTimeSeconds, lastPlayed); err != nil {
			return err
		}
	}

	for _, level := range snap.CompletedLevels {
		if _, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO completed_levels(level) VALUES(?)`, level); err != nil {
			return err
		}
	}

	overall := ""
	if snap.OverallBestTime != nil {
		overall = fmt.Sprintf("%d", *snap.OverallBestTime)
	}
	stateValues := map[string]string{
		"current_level":     fmt.Sprintf("%d", snap.CurrentLevel),
		"overall_best_time": overall,
	}
	for key, value := range stateValues {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO game_state(key, value) VALUES(?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the stored progress. A missing or unreadable database
// yields the documented defaults together with the underlying error; the
// caller logs it and plays on with fresh progress.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	snap := DefaultSnapshot()

	rows, err := s.db.QueryContext(ctx, `
		SELECT level, recipe_name, completed, best_time_s, attempts, total_time_s, last_played_ts
		FROM level_stats
	`)
	if err != nil {
		return DefaultSnapshot(), err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			level      int
			st         LevelStats
			completed  int
			best       sql.NullInt64
			lastPlayed string
		)
		if err := rows.Scan(&level, &st.RecipeName, &completed, &best, &st.Attempts, &st.TotalTimeSeconds, &lastPlayed); err != nil {
			return DefaultSnapshot(), err
		}
		st.Completed = completed != 0
		if best.Valid {
			v := int(best.Int64)
			st.BestTimeSeconds = &v
		}
		if t, err := time.Parse(timeLayout, lastPlayed); err == nil {
			st.LastPlayed = &t
		}
		snap.LevelStats[level] = st
	}
	if err := rows.Err(); err != nil {
		return DefaultSnapshot(), err
	}

	levelRows, err := s.db.QueryContext(ctx, `SELECT level FROM completed_levels ORDER BY level`)
	if err != nil {
		return DefaultSnapshot(), err
	}
	defer levelRows.Close()
	for levelRows.Next() {
		var level int
		if err := levelRows.Scan(&level); err != nil {
			return DefaultSnapshot(), err
		}
		snap.CompletedLevels = append(snap.CompletedLevels, level)
	}
	if err := levelRows.Err(); err != nil {
		return DefaultSnapshot(), err
	}

	stateRows, err := s.db.QueryContext(ctx, `SELECT key, value FROM game_state`)
	if err != nil {
		return DefaultSnapshot(), err
	}
	defer stateRows.Close()
	for stateRows.Next() {
		var key, value string
		if err := stateRows.Scan(&key, &value); err != nil {
			return DefaultSnapshot(), err
		}
		switch key {
		case "current_level":
			var lvl int
			if _, err := fmt.Sscanf(value, "%d", &lvl); err == nil && lvl >= 1 {
				snap.CurrentLevel = lvl
			}
		case "overall_best_time":
			if value != "" {
				var best int
				if _, err := fmt.Sscanf(value, "%d", &best); err == nil {
					snap.OverallBestTime = &best
				}
			}
		}
	}
	if err := stateRows.Err(); err != nil {
		return DefaultSnapshot(), err
	}

	return snap, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
