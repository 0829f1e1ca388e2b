package progress

import "encoding/json"

// Encode serializes a snapshot to the persisted JSON blob.
func Encode(s Snapshot) ([]byte, error) {
	if s.CompletedLevels == nil {
		s.CompletedLevels = []int{}
	}
	if s.LevelStats == nil {
		s.LevelStats = map[int]LevelStats{}
	}
	return json.Marshal(s)
}

// Decode parses a persisted blob. A missing, empty, or corrupt blob is not
// an error condition for the game: the documented defaults come back
// (currentLevel=1, nothing completed, no stats, no overall best) together
// with the parse error for logging.
func Decode(b []byte) (Snapshot, error) {
	if len(b) == 0 {
		return DefaultSnapshot(), nil
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return DefaultSnapshot(), err
	}
	if s.CurrentLevel < 1 {
		s.CurrentLevel = 1
	}
	if s.CompletedLevels == nil {
		s.CompletedLevels = []int{}
	}
	if s.LevelStats == nil {
		s.LevelStats = map[int]LevelStats{}
	}
	return s, nil
}
