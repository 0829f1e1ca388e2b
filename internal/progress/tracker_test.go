package progress

import "testing"

func TestRecordAttemptFailure(t *testing.T) {
	tr := NewTracker(3, DefaultSnapshot())

	if rec := tr.RecordAttempt(1, 30, false, "Mojito"); rec {
		t.Fatalf("failed attempt cannot set a record")
	}
	st := tr.Stats(1)
	if st.Attempts != 1 || st.TotalTimeSeconds != 30 {
		t.Fatalf("attempt aggregates wrong: %#v", st)
	}
	if st.Completed || st.BestTimeSeconds != nil {
		t.Fatalf("failure must not touch completion or best time: %#v", st)
	}
	if tr.Completed(1) {
		t.Fatalf("level 1 must not be completed")
	}
}

func TestRecordAttemptSuccess(t *testing.T) {
	tr := NewTracker(3, DefaultSnapshot())

	if rec := tr.RecordAttempt(1, 42, true, "Mojito"); !rec {
		t.Fatalf("first success must be a new overall record")
	}
	st := tr.Stats(1)
	if !st.Completed || st.BestTimeSeconds == nil || *st.BestTimeSeconds != 42 {
		t.Fatalf("success not recorded: %#v", st)
	}
	if st.Attempts != 1 {
		t.Fatalf("attempts = %d", st.Attempts)
	}
	if !tr.Completed(1) {
		t.Fatalf("completed set not updated")
	}

	// Slower success: attempts and total time grow, best time stays.
	if rec := tr.RecordAttempt(1, 50, true, "Mojito"); rec {
		t.Fatalf("slower time must not be a record")
	}
	st = tr.Stats(1)
	if *st.BestTimeSeconds != 42 || st.Attempts != 2 || st.TotalTimeSeconds != 92 {
		t.Fatalf("best time drifted: %#v", st)
	}

	// Faster success updates both bests.
	if rec := tr.RecordAttempt(1, 20, true, "Mojito"); !rec {
		t.Fatalf("faster time must set a new overall record")
	}
	if *tr.Stats(1).BestTimeSeconds != 20 {
		t.Fatalf("level best not lowered")
	}
	snap := tr.Snapshot()
	if snap.OverallBestTime == nil || *snap.OverallBestTime != 20 {
		t.Fatalf("overall best not lowered: %#v", snap.OverallBestTime)
	}
}

func TestOverallRecordAcrossLevels(t *testing.T) {
	tr := NewTracker(3, DefaultSnapshot())
	tr.RecordAttempt(1, 40, true, "Mojito")
	if rec := tr.RecordAttempt(2, 45, true, "Margarita"); rec {
		t.Fatalf("45s is not better than 40s")
	}
	if rec := tr.RecordAttempt(3, 10, true, "Old Fashioned"); !rec {
		t.Fatalf("10s must beat the overall record")
	}
}

func TestOverviewAggregateSuccessRate(t *testing.T) {
	tr := NewTracker(4, DefaultSnapshot())
	tr.RecordAttempt(1, 30, true, "Mojito")
	tr.RecordAttempt(2, 20, false, "Margarita")
	tr.RecordAttempt(2, 25, true, "Margarita")

	o := tr.Overview()
	if o.CompletedLevels != 2 || o.TotalLevels != 4 {
		t.Fatalf("completion counts wrong: %#v", o)
	}
	// Success rate is completed/total levels, never attempts-based.
	if o.SuccessRate != 50 {
		t.Fatalf("success rate = %d, want 50", o.SuccessRate)
	}
	if o.TotalAttempts != 3 {
		t.Fatalf("total attempts = %d", o.TotalAttempts)
	}
	if o.AverageTimeSeconds != 25 {
		t.Fatalf("average time = %d, want 25", o.AverageTimeSeconds)
	}
}

func TestLevelRowsDeriveSuccessFromCompletion(t *testing.T) {
	tr := NewTracker(2, DefaultSnapshot())
	tr.RecordAttempt(1, 30, false, "Mojito")
	tr.RecordAttempt(1, 30, true, "Mojito")

	rows := tr.LevelRows(func(lvl int) string { return "?" })
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].SuccessRate != 100 {
		t.Fatalf("completed level success = %d, want 100", rows[0].SuccessRate)
	}
	if rows[1].SuccessRate != 0 || rows[1].Name != "?" {
		t.Fatalf("untouched level row wrong: %#v", rows[1])
	}
}

func TestResetAll(t *testing.T) {
	tr := NewTracker(3, DefaultSnapshot())
	tr.RecordAttempt(1, 30, true, "Mojito")
	tr.SetCurrentLevel(2)

	tr.ResetAll()
	snap := tr.Snapshot()
	if snap.CurrentLevel != 1 || len(snap.CompletedLevels) != 0 || len(snap.LevelStats) != 0 {
		t.Fatalf("reset left progress: %#v", snap)
	}
	if snap.OverallBestTime != nil {
		t.Fatalf("overall best survived reset")
	}
}

func TestReconcileCompletedSet(t *testing.T) {
	best := 12
	snap := Snapshot{
		CurrentLevel:    9, // beyond the catalog, must clamp
		CompletedLevels: []int{2},
		LevelStats: map[int]LevelStats{
			1: {Completed: true, BestTimeSeconds: &best, Attempts: 1, TotalTimeSeconds: 12},
			2: {Attempts: 3, TotalTimeSeconds: 90},
		},
	}
	tr := NewTracker(3, snap)

	if !tr.Completed(1) || !tr.Completed(2) {
		t.Fatalf("reconcile must union both sources")
	}
	if !tr.Stats(2).Completed {
		t.Fatalf("stats flag must follow the completed set")
	}
	if tr.CurrentLevel() != 3 {
		t.Fatalf("current level not clamped: %d", tr.CurrentLevel())
	}
}
