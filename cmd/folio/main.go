package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/folio/internal/config"
	"github.com/xonecas/folio/internal/split"
	"github.com/xonecas/folio/internal/store"
	"github.com/xonecas/folio/internal/tui"
	"github.com/xonecas/folio/internal/workspace"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.FileOrDefault(dataDir), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log.Logger = zerolog.New(logFile).With().Timestamp().Logger().Level(cfg.Log.LevelOrDefault())

	ttl := time.Duration(cfg.Session.TTLOrDefault()) * time.Hour
	st, err := store.Open(filepath.Join(dataDir, "folio.db"), ttl)
	if err != nil {
		// Remembered state is a convenience; run without it.
		log.Warn().Err(err).Msg("session store unavailable")
		st = nil
	}
	defer st.Close()

	styles := tui.NewStyles(cfg.UI.SyntaxThemeOrDefault())
	opts := tui.Options{
		SyntaxTheme:     cfg.UI.SyntaxThemeOrDefault(),
		ShowLineNumbers: cfg.Editor.ShowLineNumbersOrDefault(),
		CaseSensitive:   cfg.Search.CaseSensitive,
		Find:            cfg.Search.FindOptions(),
	}
	layout := split.New(tui.PaneFactory(styles, opts, cfg.PaneOptions()))
	ws := workspace.New(layout, st, workspace.Options{
		RememberPositions: cfg.Session.RememberPositionsOrDefault(),
		Find:              opts.Find,
	})

	if len(args) == 0 {
		n := ws.RestoreSession()
		log.Info().Int("files", n).Msg("restored session")
	}
	for _, path := range args {
		if _, err := ws.Open(path); err != nil {
			return err
		}
	}

	p := tea.NewProgram(tui.New(ws, styles, opts), tea.WithFilter(tui.MouseEventFilter))
	_, err = p.Run()
	ws.Shutdown()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
