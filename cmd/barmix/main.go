// Barmix — a timed cocktail-mixing puzzle for the terminal.
//
// Usage:
//
//	barmix [-catalog cocktails.yaml] [-data-dir DIR] [-ascii]
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	clog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"barmix/internal/app"
	"barmix/internal/catalog"
	"barmix/internal/game"
	"barmix/internal/progress"
	"barmix/internal/telemetry"
	"barmix/internal/ui"
)

func main() {
	cfg := app.DefaultConfig()
	flag.StringVar(&cfg.CatalogPath, "catalog", "", "path to a cocktails YAML file (default: built-in catalog)")
	flag.StringVar(&cfg.DataDir, "data-dir", "", "directory for saved progress (default: ~/.local/share/barmix)")
	flag.StringVar(&cfg.LogPath, "log-file", "", "write a JSONL event log to this file")
	flag.BoolVar(&cfg.ASCIIOnly, "ascii", false, "avoid emoji and box-drawing characters")
	flag.Parse()

	logger := clog.NewWithOptions(os.Stderr, clog.Options{ReportTimestamp: false})
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatal("cannot create data directory", "dir", cfg.DataDir, "error", err)
	}

	runID := uuid.NewString()
	events, err := telemetry.NewJSONLogger(cfg.LogPath, runID)
	if err != nil {
		logger.Fatal("cannot open event log", "path", cfg.LogPath, "error", err)
	}

	cat, err := catalog.LoadOrBuiltin(cfg.CatalogPath)
	if err != nil {
		// The built-in catalog keeps the game playable.
		events.Error("catalog.load_failed", map[string]any{"path": cfg.CatalogPath, "error": err.Error()})
	}

	store, err := progress.NewSQLite(filepath.Join(cfg.DataDir, "progress.db"))
	if err != nil {
		logger.Fatal("cannot open progress database", "error", err)
	}
	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal("cannot prepare progress database", "error", err)
	}
	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		// Unreadable progress falls back to a fresh game.
		events.Error("progress.load_failed", map[string]any{"error": err.Error()})
	}

	relay := ui.NewRelay()
	ctrl, err := app.NewController(app.ControllerDeps{
		Catalog:      cat,
		Rules:        game.DefaultPourRules(),
		Tracker:      progress.NewTracker(cat.Len(), snap),
		Store:        store,
		Logger:       events,
		Listener:     relay,
		TickInterval: cfg.TickInterval,
	})
	if err != nil {
		logger.Fatal("cannot start the game", "error", err)
	}
	defer ctrl.Close()

	events.Info("app.start", map[string]any{"levels": cat.Len(), "level": ctrl.CurrentLevel()})

	program := tea.NewProgram(ui.New(ctrl, ui.Options{ASCIIOnly: cfg.ASCIIOnly}), tea.WithAltScreen())
	relay.Attach(program)
	if _, err := program.Run(); err != nil {
		logger.Fatal("terminal error", "error", err)
	}
}
