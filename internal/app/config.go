package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config controls runtime behavior for the TUI app.
type Config struct {
	// DataDir holds the progress database and defaults under the user's
	// local share directory.
	DataDir string
	// CatalogPath points at a cocktails YAML file. Empty means the built-in
	// catalog.
	CatalogPath string
	// LogPath enables the JSONL event log when non-empty.
	LogPath string
	// TickInterval is the wall-clock length of one game second. Tests
	// shorten it; play uses the default of one second.
	TickInterval time.Duration
	ASCIIOnly    bool
}

func DefaultConfig() Config {
	return Config{
		TickInterval: time.Second,
	}
}

func (c *Config) Validate() error {
	if c.TickInterval < 0 {
		return fmt.Errorf("invalid tick interval %s", c.TickInterval)
	}
	if c.TickInterval == 0 {
		c.TickInterval = time.Second
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "barmix")
	}
	return nil
}
