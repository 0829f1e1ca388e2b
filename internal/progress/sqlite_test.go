package progress

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "data", "progress.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := sampleSnapshot()
	if err := store.SaveSnapshot(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.CurrentLevel != want.CurrentLevel {
		t.Fatalf("current level = %d, want %d", got.CurrentLevel, want.CurrentLevel)
	}
	if !reflect.DeepEqual(got.CompletedLevels, want.CompletedLevels) {
		t.Fatalf("completed levels = %v, want %v", got.CompletedLevels, want.CompletedLevels)
	}
	if got.OverallBestTime == nil || *got.OverallBestTime != *want.OverallBestTime {
		t.Fatalf("overall best = %v, want %v", got.OverallBestTime, want.OverallBestTime)
	}
	for level, ws := range want.LevelStats {
		gs, ok := got.LevelStats[level]
		if !ok {
			t.Fatalf("level %d missing after load", level)
		}
		if gs.Completed != ws.Completed || gs.Attempts != ws.Attempts ||
			gs.TotalTimeSeconds != ws.TotalTimeSeconds || gs.RecipeName != ws.RecipeName {
			t.Fatalf("level %d stats drifted:\n got %#v\nwant %#v", level, gs, ws)
		}
		if (gs.BestTimeSeconds == nil) != (ws.BestTimeSeconds == nil) {
			t.Fatalf("level %d best-time presence drifted", level)
		}
		if ws.BestTimeSeconds != nil && *gs.BestTimeSeconds != *ws.BestTimeSeconds {
			t.Fatalf("level %d best = %d, want %d", level, *gs.BestTimeSeconds, *ws.BestTimeSeconds)
		}
		if (gs.LastPlayed == nil) != (ws.LastPlayed == nil) {
			t.Fatalf("level %d last-played presence drifted", level)
		}
		if ws.LastPlayed != nil && !gs.LastPlayed.Equal(*ws.LastPlayed) {
			t.Fatalf("level %d last played = %v, want %v", level, gs.LastPlayed, ws.LastPlayed)
		}
	}
}

func TestSQLiteSaveReplacesPreviousProgress(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveSnapshot(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveSnapshot(ctx, DefaultSnapshot()); err != nil {
		t.Fatalf("save defaults: %v", err)
	}
	got, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentLevel != 1 || len(got.CompletedLevels) != 0 || len(got.LevelStats) != 0 {
		t.Fatalf("stale progress survived the overwrite: %#v", got)
	}
	if got.OverallBestTime != nil {
		t.Fatalf("stale overall best survived: %d", *got.OverallBestTime)
	}
}

func TestSQLiteLoadFromFreshDatabase(t *testing.T) {
	store := openTestStore(t)

	got, err := store.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, DefaultSnapshot()) {
		t.Fatalf("fresh database must yield defaults, got %#v", got)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	got, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if !reflect.DeepEqual(got, DefaultSnapshot()) {
		t.Fatalf("empty store must yield defaults, got %#v", got)
	}

	want := sampleSnapshot()
	if err := store.SaveSnapshot(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentLevel != want.CurrentLevel || len(got.LevelStats) != len(want.LevelStats) {
		t.Fatalf("round trip drifted: %#v", got)
	}
}
