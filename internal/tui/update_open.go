package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/folio/internal/filesearch"
	"github.com/xonecas/folio/internal/tui/modal"
)

const (
	scanTimeout   = 5 * time.Second
	maxOpenListed = 200
)

// filesScannedMsg carries the file index for the open dialog.
type filesScannedMsg struct {
	index *filesearch.Index
	err   error
}

// openPath is the picker value for a file to open.
type openPath string

// scanFiles indexes the working directory off the update loop.
func scanFiles() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()
		wd, err := os.Getwd()
		if err != nil {
			return filesScannedMsg{err: err}
		}
		ix, err := filesearch.Scan(ctx, wd, filesearch.Options{})
		return filesScannedMsg{index: ix, err: err}
	}
}

// openFilePicker lists the indexed files. A query naming an existing file
// outside the index is offered as well.
func (m *Model) openFilePicker(msg filesScannedMsg) {
	if msg.err != nil {
		log.Warn().Err(msg.err).Msg("file scan failed")
		m.setStatus("Could not list files: "+msg.err.Error(), true)
		return
	}
	ix := msg.index
	searchFn := func(query string) ([]modal.Item, string) {
		var items []modal.Item
		if p := expandPath(query); p != "" {
			if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
				items = append(items, modal.Item{Name: query, Desc: "open path", Value: openPath(p)})
			}
		}
		results := ix.Match(query, maxOpenListed)
		for _, r := range results {
			items = append(items, modal.Item{Name: r.Path, Value: openPath(ix.Abs(r.Path))})
		}
		status := fmt.Sprintf("%d of %d file(s)", len(results), len(ix.Paths()))
		if ix.Truncated() {
			status += " (listing truncated)"
		}
		return items, status
	}
	m.picker = modal.NewPicker(searchFn, "Open: ", "", m.styles.ModalColors())
}

// expandPath returns query as a file system path when it looks like one.
func expandPath(query string) string {
	switch {
	case strings.HasPrefix(query, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, query[2:])
	case filepath.IsAbs(query), strings.HasPrefix(query, "./"), strings.HasPrefix(query, "../"):
		return query
	}
	return ""
}

// openFile opens path and reports failures in the status bar.
func (m *Model) openFile(path string) {
	if _, err := m.ws.Open(path); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.focus = focusEditor
}
