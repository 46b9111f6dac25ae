package editor

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/folio/internal/highlight"
)

// class is how a cell is drawn. Later classes win.
type class int

const (
	clsNormal class = iota
	clsMatch
	clsCurrent
	clsSelection
	clsCursor
)

// View renders the visible rows, each padded to the widget width.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.Len() == 0 && m.Placeholder != "" && !m.focus {
		return m.placeholderView()
	}

	st := m.Styles
	tw := m.textWidth()
	gw := m.gutterWidth()
	rows := m.visibleRows()

	var richLines []string
	if rich, ok := m.Rich(); ok {
		richLines = highlight.SplitLines(rich)
	}

	o := m.newOverlay(rows)

	var b strings.Builder
	fullLine, full := -1, ""
	for vi := 0; vi < m.height; vi++ {
		if vi > 0 {
			b.WriteByte('\n')
		}
		if vi >= len(rows) {
			b.WriteString(st.Text.Render(strings.Repeat(" ", m.width)))
			continue
		}
		r := rows[vi]

		// -- Gutter ----------------------------------------------------------
		if gw > 0 {
			if r.first == 0 || !m.WordWrap() {
				b.WriteString(st.LineNumber.Render(fmt.Sprintf("%*d ", gw-1, r.line)))
			} else {
				b.WriteString(st.LineNumber.Render(strings.Repeat(" ", gw)))
			}
		}

		// -- Text ------------------------------------------------------------
		if r.line != fullLine {
			fullLine, full = r.line, m.styledLine(r.line, richLines)
		}
		rendered := m.renderRow(r, full, o)

		rw := lipgloss.Width(rendered)
		if rw > tw {
			rendered = ansi.Truncate(rendered, tw, "")
			rw = lipgloss.Width(rendered)
		}
		b.WriteString(rendered)
		if rw < tw {
			b.WriteString(st.Text.Render(strings.Repeat(" ", tw-rw)))
		}
	}
	return b.String()
}

// overlay is the per-frame state used to classify cells.
type overlay struct {
	cursor   int // -1 when not drawn
	selStart int
	selEnd   int
	hasSel   bool
	hl       []highlightSpan
	next     int
}

type highlightSpan struct {
	start, end int
	current    bool
}

func (m *Model) newOverlay(rows []visualRow) *overlay {
	o := &overlay{cursor: -1}
	if m.focus {
		o.cursor = m.CursorOffset()
	}
	o.selStart, o.selEnd, o.hasSel = m.Selection()
	for _, h := range m.Highlights() {
		o.hl = append(o.hl, highlightSpan{h.Start, h.End, h.Current})
	}
	slices.SortFunc(o.hl, func(a, b highlightSpan) int { return a.start - b.start })
	if len(rows) > 0 {
		first := rows[0].eol
		if len(rows[0].cells) > 0 {
			first = rows[0].cells[0].off
		}
		o.next = sort.Search(len(o.hl), func(i int) bool { return o.hl[i].end > first })
	}
	return o
}

// classify returns the class of a cell at off. Offsets must be passed in
// non-decreasing order within a frame.
func (o *overlay) classify(off int, isCursor bool) class {
	if isCursor {
		return clsCursor
	}
	if o.hasSel && off >= o.selStart && off < o.selEnd {
		return clsSelection
	}
	for o.next < len(o.hl) && o.hl[o.next].end <= off {
		o.next++
	}
	if o.next < len(o.hl) && o.hl[o.next].start <= off {
		if o.hl[o.next].current {
			return clsCurrent
		}
		return clsMatch
	}
	return clsNormal
}

// styledLine returns the line with syntax or rich styling, aligned cell
// for cell with lineCells, or "" when the line is drawn plain.
func (m *Model) styledLine(line int, richLines []string) string {
	plain := m.Lines().Text(line)
	if line-1 < len(richLines) && !strings.Contains(plain, "\t") {
		if rl := richLines[line-1]; ansi.Strip(rl) == plain {
			return rl
		}
	}
	if m.Language == "" || m.Language == "text" || m.SyntaxTheme == "" {
		return ""
	}
	cells := m.lineCells(line)
	runes := make([]rune, len(cells))
	for i, c := range cells {
		runes[i] = c.r
	}
	return highlight.Cached(string(runes), m.Language, m.SyntaxTheme, m.Styles.Background)
}

// renderRow draws one visual row: runs of cells sharing a class are styled
// together, normal runs keep their syntax colours.
func (m *Model) renderRow(r visualRow, full string, o *overlay) string {
	st := m.Styles

	// The caret sits after the last cell when it is at the end of the line.
	caretAtEnd := r.last && o.cursor == r.eol && len(r.cells) < m.textWidth()

	var b strings.Builder
	runStart, runCls := 0, clsNormal
	flush := func(end int) {
		if end <= runStart {
			return
		}
		seg := r.cells[runStart:end]
		text := make([]rune, len(seg))
		for i, c := range seg {
			text[i] = c.r
		}
		switch runCls {
		case clsNormal:
			if full != "" {
				b.WriteString(ansi.Cut(full, r.first+runStart, r.first+end))
			} else {
				b.WriteString(st.Text.Render(string(text)))
			}
		case clsMatch:
			b.WriteString(st.Match.Render(string(text)))
		case clsCurrent:
			b.WriteString(st.CurrentMatch.Render(string(text)))
		case clsSelection:
			b.WriteString(st.Selection.Render(string(text)))
		case clsCursor:
			b.WriteString(st.Cursor.Render(string(text)))
		}
	}

	for i, c := range r.cells {
		// A tab spans several cells; only its first carries the caret.
		isCursor := c.off == o.cursor
		if isCursor && i > 0 {
			isCursor = r.cells[i-1].off != c.off
		} else if isCursor {
			isCursor = !m.continuesTab(r)
		}
		cls := o.classify(c.off, isCursor)
		if cls != runCls {
			flush(i)
			runStart, runCls = i, cls
		}
	}
	flush(len(r.cells))

	if caretAtEnd {
		b.WriteString(st.Cursor.Render(" "))
	}
	return b.String()
}

// continuesTab reports whether the first cell of a row belongs to a tab
// that started on the row before.
func (m *Model) continuesTab(r visualRow) bool {
	if r.first == 0 || len(r.cells) == 0 {
		return false
	}
	cells := m.lineCells(r.line)
	return cells[r.first-1].off == r.cells[0].off
}

// placeholderView shows the placeholder on the first row.
func (m *Model) placeholderView() string {
	st := m.Styles
	tw := m.textWidth()
	gw := m.gutterWidth()

	var b strings.Builder
	if gw > 0 {
		b.WriteString(st.LineNumber.Render(fmt.Sprintf("%*d ", gw-1, 1)))
	}
	ph := st.Placeholder.Render(ansi.Truncate(m.Placeholder, tw, ""))
	pw := lipgloss.Width(ph)
	b.WriteString(ph)
	if pw < tw {
		b.WriteString(st.Text.Render(strings.Repeat(" ", tw-pw)))
	}
	for vi := 1; vi < m.height; vi++ {
		b.WriteByte('\n')
		b.WriteString(st.Text.Render(strings.Repeat(" ", m.width)))
	}
	return b.String()
}
