package store

import (
	"time"

	"github.com/rs/zerolog/log"
)

// State is the remembered view of a file: 1-based cursor position and
// scroll offsets.
type State struct {
	Line    int
	Column  int
	ScrollX int
	ScrollY int
}

// ViewState returns the remembered state for path, if fresh.
// Safe to call on a nil receiver (returns miss).
func (s *Store) ViewState(path string) (State, bool) {
	if s == nil || path == "" {
		return State{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var st State
	err := s.db.QueryRow(
		"SELECT line, col, scroll_x, scroll_y FROM view_state WHERE path = ? AND created > ?",
		path, s.cutoff(),
	).Scan(&st.Line, &st.Column, &st.ScrollX, &st.ScrollY)
	if err != nil {
		return State{}, false
	}
	return st, true
}

// SaveViewState queues the state of path for async persistence.
// Non-blocking; no-op on nil receiver or an untitled document.
func (s *Store) SaveViewState(path string, st State) {
	if s == nil || path == "" {
		return
	}
	select {
	case s.saveCh <- saveReq{path: path, state: st}:
	default:
		log.Warn().Str("path", path).Msg("save channel full, dropping view state")
	}
}

func (s *Store) writeViewState(path string, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO view_state (path, line, col, scroll_x, scroll_y, created)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		path, st.Line, st.Column, st.ScrollX, st.ScrollY, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to save view state")
	}
}
