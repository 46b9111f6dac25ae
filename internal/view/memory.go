package view

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/folio/internal/search"
)

const defaultHeight = 24

// Memory is a Buffer that keeps its text in a string and models a viewport
// of a fixed number of lines. Rich text is ANSI-styled text; its plain
// projection strips the escape sequences.
type Memory struct {
	text string

	rich      string
	richValid bool

	hist   history
	cursor int
	anchor int // -1 when nothing is selected

	scrollX int
	scrollY int // first visible line, 0-indexed
	height  int

	wrap       bool
	highlights []Highlight

	observer Observer
	quiet    bool

	lines *search.LineIndex

	textReads int
	richReads int
	revision  int
}

// NewMemory returns an empty buffer showing height lines at a time.
func NewMemory(height int) *Memory {
	if height <= 0 {
		height = defaultHeight
	}
	return &Memory{anchor: -1, height: height, wrap: true}
}

// Lines returns the line index of the current text.
func (m *Memory) Lines() *search.LineIndex {
	if m.lines == nil {
		m.lines = search.NewLineIndex(m.text)
	}
	return m.lines
}

// Len returns the length of the text in bytes.
func (m *Memory) Len() int { return len(m.text) }

// Text returns the full text.
func (m *Memory) Text() string {
	m.textReads++
	return m.text
}

// Revision counts text changes, including ones made in quiet mode.
func (m *Memory) Revision() int { return m.revision }

// TextReads counts calls to Text.
func (m *Memory) TextReads() int { return m.textReads }

// RichReads counts calls to RichText.
func (m *Memory) RichReads() int { return m.richReads }

// SetText replaces the whole text as one undoable edit.
func (m *Memory) SetText(s string) {
	cur := m.cursor
	m.replace(0, len(m.text), s)
	m.anchor = -1
	m.moveCursor(min(cur, len(m.text)))
}

// RichText returns the rich payload last set, or the plain text converted
// to rich form when the text was edited since.
func (m *Memory) RichText() string {
	m.richReads++
	if m.richValid {
		return m.rich
	}
	return m.text
}

// Rich returns the rich payload without counting a read. ok is false once
// the text has been edited since SetRichText.
func (m *Memory) Rich() (string, bool) { return m.rich, m.richValid }

// SetRichText stores s and shows its plain projection.
func (m *Memory) SetRichText(s string) {
	m.SetText(ansi.Strip(s))
	m.rich = s
	m.richValid = true
}

// CursorOffset returns the caret position.
func (m *Memory) CursorOffset() int { return m.cursor }

// SetCursorOffset moves the caret and drops the selection.
func (m *Memory) SetCursorOffset(offset int) {
	m.anchor = -1
	m.moveCursor(m.clamp(offset))
}

// CursorLineColumn returns the 1-indexed caret line and character column.
func (m *Memory) CursorLineColumn() (int, int) {
	li := m.Lines()
	line := li.LineOf(m.cursor)
	return line, utf8.RuneCountInString(m.text[li.Start(line):m.cursor]) + 1
}

// OffsetAt converts a 1-indexed line and character column to an offset,
// clamping both into the text.
func (m *Memory) OffsetAt(line, column int) int {
	li := m.Lines()
	line = max(1, min(line, li.Lines()))
	off, end := li.Start(line), li.End(line)
	for n := 1; n < column && off < end; n++ {
		_, size := utf8.DecodeRuneInString(m.text[off:end])
		off += size
	}
	return off
}

// Selection returns the ordered selection bounds.
func (m *Memory) Selection() (int, int, bool) {
	if m.anchor < 0 || m.anchor == m.cursor {
		return 0, 0, false
	}
	return min(m.anchor, m.cursor), max(m.anchor, m.cursor), true
}

// Anchor returns the fixed end of the selection, or -1.
func (m *Memory) Anchor() int { return m.anchor }

// SetSelection selects anchor..active with the caret at active.
func (m *Memory) SetSelection(anchor, active int) {
	m.anchor = m.clamp(anchor)
	m.moveCursor(m.clamp(active))
}

// ClearSelection drops the selection and keeps the caret.
func (m *Memory) ClearSelection() { m.anchor = -1 }

// Scroll returns the horizontal column and first visible line offsets.
func (m *Memory) Scroll() (int, int) { return m.scrollX, m.scrollY }

// SetScroll sets the scroll offsets, clamped into the text.
func (m *Memory) SetScroll(x, y int) {
	m.scrollX = max(0, x)
	m.scrollY = max(0, min(y, m.Lines().Lines()-1))
}

// Height returns the number of visible lines.
func (m *Memory) Height() int { return m.height }

// SetHeight resizes the viewport.
func (m *Memory) SetHeight(h int) {
	if h > 0 {
		m.height = h
	}
}

// EnsureVisible scrolls vertically so the line holding offset is shown.
func (m *Memory) EnsureVisible(offset int) {
	line := m.Lines().LineOf(m.clamp(offset)) - 1
	switch {
	case line < m.scrollY:
		m.scrollY = line
	case line >= m.scrollY+m.height:
		m.scrollY = line - m.height + 1
	}
}

// VisibleRange returns the offsets spanned by the visible lines.
func (m *Memory) VisibleRange() (int, int) {
	li := m.Lines()
	first := m.scrollY + 1
	last := min(m.scrollY+m.height, li.Lines())
	return li.Start(first), li.End(last)
}

// IsModified reports whether the text differs from the last save point.
func (m *Memory) IsModified() bool { return m.hist.Modified() }

// SetModified moves or invalidates the save point.
func (m *Memory) SetModified(modified bool) {
	was := m.hist.Modified()
	m.hist.SetModified(modified)
	m.emitModified(was)
}

// Undo reverts the last edit group.
func (m *Memory) Undo() bool {
	was := m.hist.Modified()
	g, ok := m.hist.PopUndo()
	if !ok {
		return false
	}
	m.setText(g.revert(m.text), was)
	m.anchor = -1
	m.moveCursor(m.clamp(g.cursorBefore()))
	return true
}

// Redo reapplies the last undone edit group.
func (m *Memory) Redo() bool {
	was := m.hist.Modified()
	g, ok := m.hist.PopRedo()
	if !ok {
		return false
	}
	m.setText(g.apply(m.text), was)
	m.anchor = -1
	m.moveCursor(m.clamp(g.cursorAfter()))
	return true
}

// CanUndo reports whether an edit can be undone.
func (m *Memory) CanUndo() bool { return m.hist.CanUndo() }

// ClearUndoHistory drops undo and redo stacks. The modification flag is
// kept.
func (m *Memory) ClearUndoHistory() {
	was := m.hist.Modified()
	m.hist.Clear()
	if was {
		m.hist.SetModified(true)
	}
}

// Replace swaps text[start:end] for text and leaves the caret after it.
func (m *Memory) Replace(start, end int, text string) {
	start, end = m.clamp(start), m.clamp(end)
	if end < start {
		start, end = end, start
	}
	m.replace(start, end, text)
	m.anchor = -1
	m.moveCursor(start + len(text))
}

// BeginEdit opens an undo group.
func (m *Memory) BeginEdit() { m.hist.Begin() }

// EndEdit closes the undo group opened by BeginEdit.
func (m *Memory) EndEdit() {
	was := m.hist.Modified()
	m.hist.End()
	m.emitModified(was)
}

// Highlights returns the ranges set by SetHighlights.
func (m *Memory) Highlights() []Highlight { return m.highlights }

// SetHighlights replaces the highlighted ranges.
func (m *Memory) SetHighlights(hl []Highlight) {
	m.highlights = append(m.highlights[:0], hl...)
}

// WordWrap reports whether soft wrapping is on.
func (m *Memory) WordWrap() bool { return m.wrap }

// SetWordWrap toggles soft wrapping. Wrapping resets horizontal scroll.
func (m *Memory) SetWordWrap(on bool) {
	m.wrap = on
	if on {
		m.scrollX = 0
	}
}

// SetObserver registers the notification callbacks.
func (m *Memory) SetObserver(o Observer) { m.observer = o }

// SetQuiet toggles notification suppression.
func (m *Memory) SetQuiet(quiet bool) bool {
	prev := m.quiet
	m.quiet = quiet
	return prev
}

// Quiet reports whether notifications are suppressed.
func (m *Memory) Quiet() bool { return m.quiet }

func (m *Memory) replace(start, end int, text string) {
	old := m.text[start:end]
	if old == text {
		return
	}
	was := m.hist.Modified()
	m.hist.Record(start, old, text)
	m.setText(m.text[:start]+text+m.text[end:], was)
}

func (m *Memory) setText(s string, wasModified bool) {
	m.text = s
	m.revision++
	m.lines = nil
	m.richValid = false
	m.rich = ""
	if !m.quiet && m.observer.OnTextChanged != nil {
		m.observer.OnTextChanged()
	}
	m.emitModified(wasModified)
}

func (m *Memory) emitModified(was bool) {
	now := m.hist.Modified()
	if now == was || m.quiet || m.observer.OnModificationChanged == nil {
		return
	}
	m.observer.OnModificationChanged(now)
}

func (m *Memory) moveCursor(offset int) {
	if offset == m.cursor {
		return
	}
	m.cursor = offset
	if !m.quiet && m.observer.OnCursorMoved != nil {
		m.observer.OnCursorMoved(offset)
	}
}

func (m *Memory) clamp(offset int) int {
	return max(0, min(offset, len(m.text)))
}

var _ Buffer = (*Memory)(nil)
