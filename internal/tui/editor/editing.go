package editor

import (
	"strings"
	"unicode/utf8"
)

// InsertText replaces the selection, or inserts at the caret. Carriage
// returns are dropped; newlines are dropped too in single-line mode.
func (m *Model) InsertText(text string) {
	if m.ReadOnly {
		return
	}
	text = strings.ReplaceAll(text, "\r", "")
	if m.SingleLine {
		text = strings.ReplaceAll(text, "\n", "")
	}
	start, end := m.CursorOffset(), m.CursorOffset()
	if a, b, ok := m.Selection(); ok {
		start, end = a, b
	}
	if start == end && text == "" {
		return
	}
	m.Replace(start, end, text)
}

// DeleteSelection removes the selected text and reports whether there was any.
func (m *Model) DeleteSelection() bool {
	a, b, ok := m.Selection()
	if !ok || m.ReadOnly {
		return false
	}
	m.Replace(a, b, "")
	return true
}

// SelectedText returns the selected text, or "".
func (m *Model) SelectedText() string {
	a, b, ok := m.Selection()
	if !ok {
		return ""
	}
	return m.Text()[a:b]
}

// SelectAll selects the whole text.
func (m *Model) SelectAll() { m.SetSelection(0, m.Len()) }

func (m *Model) deleteBack() {
	if m.ReadOnly || m.DeleteSelection() {
		return
	}
	off := m.CursorOffset()
	if off == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(m.Text()[:off])
	m.Replace(off-size, off, "")
}

func (m *Model) deleteForward() {
	if m.ReadOnly || m.DeleteSelection() {
		return
	}
	off := m.CursorOffset()
	if off >= m.Len() {
		return
	}
	_, size := utf8.DecodeRuneInString(m.Text()[off:])
	m.Replace(off, off+size, "")
}

func (m *Model) insertNewline() {
	if m.SingleLine {
		return
	}
	m.InsertText("\n")
}

// tabIndent indents to match the leading whitespace of the line above, or
// inserts a tab when there is none.
func (m *Model) tabIndent() {
	if m.ReadOnly {
		return
	}
	indent := "\t"
	line := m.Lines().LineOf(m.CursorOffset())
	if line > 1 {
		above := m.Lines().Text(line - 1)
		if ws := above[:len(above)-len(strings.TrimLeft(above, " \t"))]; ws != "" {
			indent = ws
		}
	}
	m.InsertText(indent)
}

// --- Caret targets ---

func (m *Model) prevRune(off int) int {
	if off <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(m.Text()[:off])
	return off - size
}

func (m *Model) nextRune(off int) int {
	if off >= m.Len() {
		return m.Len()
	}
	_, size := utf8.DecodeRuneInString(m.Text()[off:])
	return off + size
}

// vertical moves delta lines from off, keeping the rune column.
func (m *Model) vertical(off, delta int) int {
	li := m.Lines()
	line := li.LineOf(off)
	col := utf8.RuneCountInString(m.Text()[li.Start(line):off]) + 1
	target := line + delta
	switch {
	case target < 1:
		return 0
	case target > li.Lines():
		return m.Len()
	}
	return m.OffsetAt(target, col)
}

func (m *Model) lineStart(off int) int {
	li := m.Lines()
	return li.Start(li.LineOf(off))
}

func (m *Model) lineEnd(off int) int {
	li := m.Lines()
	return li.End(li.LineOf(off))
}

// moveTo places the caret at target, extending the selection from its
// anchor when extend is set.
func (m *Model) moveTo(target int, extend bool) {
	if !extend {
		m.SetCursorOffset(target)
		return
	}
	anchor := m.Anchor()
	if anchor < 0 {
		anchor = m.CursorOffset()
	}
	m.SetSelection(anchor, target)
}
