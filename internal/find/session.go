package find

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xonecas/folio/internal/search"
	"github.com/xonecas/folio/internal/view"
)

// State is the lifecycle of a session's search results.
type State int

const (
	// Idle means there is no query.
	Idle State = iota
	// Pending means the query changed and the search has not run yet.
	Pending
	// Ready means the matches reflect the current query and text.
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session is the find/replace controller for one buffer view.
type Session struct {
	buf   view.Buffer
	sched Scheduler
	opts  Options

	query         string
	replacement   string
	caseSensitive bool

	state   State
	matches []search.Range
	current int

	timer Timer
	gen   int
	open  bool
	note  string

	// OnReady, when set, is called each time a search completes.
	OnReady func()
}

// NewSession returns an idle session bound to buf.
func NewSession(buf view.Buffer, sched Scheduler, opts Options) *Session {
	if sched == nil {
		sched = Immediate{}
	}
	return &Session{
		buf:     buf,
		sched:   sched,
		opts:    opts.withDefaults(),
		current: -1,
	}
}

// Buffer returns the bound view.
func (s *Session) Buffer() view.Buffer { return s.buf }

// Rebind moves the session to another view, clearing highlights on the old
// one. A non-empty query is searched again after the debounce delay.
func (s *Session) Rebind(buf view.Buffer) {
	if buf == s.buf {
		return
	}
	if s.buf != nil {
		s.buf.SetHighlights(nil)
	}
	s.buf = buf
	s.invalidate()
}

// Refresh searches again after the view's text changed, such as an edit or
// a different document shown in the same view.
func (s *Session) Refresh() {
	if !s.open {
		return
	}
	s.invalidate()
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Query returns the search text.
func (s *Session) Query() string { return s.query }

// Replacement returns the replacement text.
func (s *Session) Replacement() string { return s.replacement }

// CaseSensitive reports whether matching respects case.
func (s *Session) CaseSensitive() bool { return s.caseSensitive }

// IsOpen reports whether the find bar is showing.
func (s *Session) IsOpen() bool { return s.open }

// Matches returns the current match ranges. Valid only in Ready.
func (s *Session) Matches() []search.Range { return s.matches }

// Current returns the current match index, or -1.
func (s *Session) Current() int { return s.current }

// SetQuery changes the search text and restarts the debounce timer.
func (s *Session) SetQuery(q string) {
	if q == s.query {
		return
	}
	s.query = q
	s.invalidate()
}

// SetCaseSensitive changes case handling and restarts the debounce timer.
func (s *Session) SetCaseSensitive(v bool) {
	if v == s.caseSensitive {
		return
	}
	s.caseSensitive = v
	s.invalidate()
}

// SetReplacement sets the text used by the replace operations.
func (s *Session) SetReplacement(r string) { s.replacement = r }

// Open shows the session. A selection on a single line seeds the query, and
// any query is searched immediately.
func (s *Session) Open() {
	s.open = true
	if start, end, ok := s.buf.Selection(); ok {
		if sel := s.buf.Text()[start:end]; !strings.Contains(sel, "\n") {
			s.query = sel
		}
	}
	if s.query == "" {
		s.reset()
		return
	}
	s.state = Pending
	s.Flush()
}

// Close hides the session, cancels a pending search and clears highlights.
func (s *Session) Close() {
	s.open = false
	s.stopTimer()
	s.buf.SetHighlights(nil)
	if s.state == Ready {
		s.state = Pending
	}
}

// Flush runs a pending search now.
func (s *Session) Flush() {
	if s.state != Pending {
		return
	}
	s.stopTimer()
	s.run()
}

// FindNext selects the next match, wrapping to the first.
func (s *Session) FindNext() bool { return s.step(1) }

// FindPrevious selects the previous match, wrapping to the last.
func (s *Session) FindPrevious() bool { return s.step(-1) }

func (s *Session) step(delta int) bool {
	s.Flush()
	n := len(s.matches)
	if n == 0 {
		return false
	}
	s.current = ((s.current+delta)%n + n) % n
	s.note = ""
	s.selectCurrent()
	return true
}

// ReplaceCurrent replaces the current match if it is exactly what the view
// has selected; otherwise it selects the current match so the next call can
// act on it.
func (s *Session) ReplaceCurrent() bool {
	s.Flush()
	if len(s.matches) == 0 || s.current < 0 {
		return false
	}
	m := s.matches[s.current]
	start, end, ok := s.buf.Selection()
	if !ok || start != m.Start || end != m.End {
		s.selectCurrent()
		return false
	}

	prev := s.current
	s.buf.Replace(m.Start, m.End, s.replacement)
	s.run()
	if len(s.matches) > 0 && len(s.matches) <= prev {
		s.current = 0
	}
	if len(s.matches) > 0 {
		s.selectCurrent()
	}
	return true
}

// ReplaceAll replaces every match and returns how many were replaced.
func (s *Session) ReplaceAll() int {
	s.Flush()
	if len(s.matches) == 0 {
		return 0
	}
	n := replaceInBuffer(s.buf, s.matches, s.query, s.replacement, s.caseSensitive, s.opts.ReplaceThreshold)
	s.run()
	s.note = fmt.Sprintf("Replaced %d occurrence(s)", n)
	return n
}

// Scrolled recomputes viewport-limited highlights after the view scrolled.
func (s *Session) Scrolled() {
	if s.state == Ready && s.open && len(s.matches) > s.opts.HighlightThreshold {
		s.refreshHighlights()
	}
}

// Status is the one-line summary shown next to the query.
func (s *Session) Status() string {
	switch {
	case s.note != "":
		return s.note
	case s.query == "":
		return "Enter search text"
	case s.state != Ready:
		return ""
	case len(s.matches) == 0:
		return "No matches found"
	}
	return fmt.Sprintf("Match %d of %d", s.current+1, len(s.matches))
}

func (s *Session) invalidate() {
	s.note = ""
	if s.query == "" {
		s.stopTimer()
		s.reset()
		s.buf.SetHighlights(nil)
		return
	}
	s.state = Pending
	s.schedule()
}

func (s *Session) reset() {
	s.state = Idle
	s.matches = nil
	s.current = -1
}

func (s *Session) schedule() {
	s.stopTimer()
	s.gen++
	gen := s.gen
	s.timer = s.sched.AfterFunc(s.opts.Debounce, func() {
		if gen == s.gen && s.state == Pending {
			s.timer = nil
			s.run()
		}
	})
}

func (s *Session) stopTimer() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) run() {
	s.matches = search.FindPositions(s.buf.Text(), s.query, s.caseSensitive)
	s.current = search.IndexAtOrAfter(s.matches, s.buf.CursorOffset())
	s.state = Ready
	if s.open {
		s.refreshHighlights()
	}
	if s.OnReady != nil {
		s.OnReady()
	}
}

func (s *Session) selectCurrent() {
	m := s.matches[s.current]
	s.buf.SetSelection(m.Start, m.End)
	s.buf.EnsureVisible(m.Start)
	if s.open {
		s.refreshHighlights()
	}
}

func (s *Session) refreshHighlights() {
	s.buf.SetHighlights(highlights(s.buf, s.matches, s.current, s.opts))
}

// highlights converts matches to highlight ranges. Above the threshold only
// matches intersecting the visible range plus the margin are included.
func highlights(buf view.Buffer, matches []search.Range, current int, opts Options) []view.Highlight {
	if len(matches) == 0 {
		return nil
	}
	lo, hi := 0, len(matches)
	if len(matches) > opts.HighlightThreshold {
		first, last := buf.VisibleRange()
		first -= opts.ViewportMargin
		last += opts.ViewportMargin
		lo = sort.Search(len(matches), func(i int) bool { return matches[i].End > first })
		hi = lo + sort.Search(len(matches)-lo, func(i int) bool { return matches[lo+i].Start >= last })
	}
	out := make([]view.Highlight, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, view.Highlight{Start: matches[i].Start, End: matches[i].End, Current: i == current})
	}
	return out
}

// replaceInBuffer replaces matches inside buf. Below threshold every match
// is edited from last to first inside one undo group; at or above it the
// whole text is replaced in one operation.
func replaceInBuffer(buf view.Buffer, matches []search.Range, query, replacement string, caseSensitive bool, threshold int) int {
	if len(matches) < threshold {
		view.Grouped(buf, func() {
			for i := len(matches) - 1; i >= 0; i-- {
				buf.Replace(matches[i].Start, matches[i].End, replacement)
			}
		})
		return len(matches)
	}
	text, n := search.ReplaceAll(buf.Text(), query, replacement, caseSensitive)
	if n > 0 {
		cursor := buf.CursorOffset()
		buf.SetText(text)
		buf.SetCursorOffset(min(cursor, len(text)))
	}
	return n
}
