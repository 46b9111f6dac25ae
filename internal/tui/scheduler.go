package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/folio/internal/find"
)

// timerMsg is delivered when a scheduled callback is due.
type timerMsg struct{ id int }

// teaScheduler runs find.Session callbacks on the bubbletea loop: each
// AfterFunc becomes a tea.Tick whose message fires the callback from
// Update.
type teaScheduler struct {
	next    int
	pending map[int]func()
	cmds    []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[int]func())}
}

type teaTimer struct {
	s  *teaScheduler
	id int
}

func (t teaTimer) Stop() bool {
	_, ok := t.s.pending[t.id]
	delete(t.s.pending, t.id)
	return ok
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) find.Timer {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg { return timerMsg{id: id} }))
	return teaTimer{s: s, id: id}
}

// fire runs the callback for id unless it was stopped.
func (s *teaScheduler) fire(id int) {
	fn, ok := s.pending[id]
	if !ok {
		return
	}
	delete(s.pending, id)
	fn()
}

// drain returns the ticks queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}
