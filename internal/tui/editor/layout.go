package editor

const tabWidth = 4

// cell is one screen column of a line.
type cell struct {
	r   rune
	off int // byte offset of the rune that produced the cell
}

// lineCells lays out the 1-based line as cells, expanding tabs to the next
// tabWidth stop. A trailing carriage return is not drawn.
func (m *Model) lineCells(line int) []cell {
	li := m.Lines()
	start, end := li.Start(line), li.End(line)
	text := m.Text()[start:end]

	cells := make([]cell, 0, len(text))
	for i, r := range text {
		off := start + i
		switch {
		case r == '\t':
			n := tabWidth - len(cells)%tabWidth
			for range n {
				cells = append(cells, cell{' ', off})
			}
		case r == '\r' && off == end-1:
		default:
			cells = append(cells, cell{r, off})
		}
	}
	return cells
}

// cellIndex returns the index of the first cell at or after off, or
// len(cells) when off is at the end of the line.
func cellIndex(cells []cell, off int) int {
	for i, c := range cells {
		if c.off >= off {
			return i
		}
	}
	return len(cells)
}

// wrapRows is the number of screen rows a line of n cells takes when
// wrapped. A line that exactly fills its rows gets one more for the caret.
func wrapRows(n, width int) int { return n/width + 1 }

// visualRow is one screen row of text.
type visualRow struct {
	line  int
	cells []cell
	first int // index of cells[0] within the whole line
	eol   int // offset of the end of the line
	last  bool
}

// visibleRows lays out the rows shown from the current scroll position.
func (m *Model) visibleRows() []visualRow {
	if m.height <= 0 {
		return nil
	}
	x, top := m.Scroll()
	li := m.Lines()
	tw := m.textWidth()
	wrap := m.WordWrap()

	rows := make([]visualRow, 0, m.height)
	for line := top + 1; line <= li.Lines() && len(rows) < m.height; line++ {
		cells := m.lineCells(line)
		eol := li.End(line)
		if !wrap {
			lo, hi := min(x, len(cells)), min(x+tw, len(cells))
			rows = append(rows, visualRow{line: line, cells: cells[lo:hi], first: lo, eol: eol, last: true})
			continue
		}
		n := wrapRows(len(cells), tw)
		for s := 0; s < n && len(rows) < m.height; s++ {
			lo := s * tw
			hi := min(lo+tw, len(cells))
			rows = append(rows, visualRow{line: line, cells: cells[lo:hi], first: lo, eol: eol, last: s == n-1})
		}
	}
	return rows
}

// followCursor scrolls so the caret is on screen.
func (m *Model) followCursor() { m.follow(m.CursorOffset()) }

// follow scrolls so off is on screen, counting wrapped rows.
func (m *Model) follow(off int) {
	if m.height <= 0 {
		return
	}
	x, y := m.Scroll()
	line := m.Lines().LineOf(off)
	ci := cellIndex(m.lineCells(line), off)
	tw := m.textWidth()

	if line-1 < y {
		y = line - 1
	}
	// Every line takes at least one row.
	if line-1-y >= m.height {
		y = line - m.height
	}

	if m.WordWrap() {
		x = 0
		rows := ci/tw + 1
		for l := y + 1; l < line; l++ {
			rows += wrapRows(len(m.lineCells(l)), tw)
		}
		for rows > m.height && y < line-1 {
			rows -= wrapRows(len(m.lineCells(y+1)), tw)
			y++
		}
	} else {
		switch {
		case ci < x:
			x = ci
		case ci >= x+tw:
			x = ci - tw + 1
		}
	}
	m.SetScroll(x, y)
}

// offsetAt maps widget-relative screen coordinates to a text offset.
func (m *Model) offsetAt(x, y int) int {
	rows := m.visibleRows()
	if len(rows) == 0 {
		return 0
	}
	if y < 0 {
		y = 0
	}
	if y >= len(rows) {
		return rows[len(rows)-1].eol
	}
	r := rows[y]
	col := max(0, x-m.gutterWidth())
	switch {
	case col < len(r.cells):
		return r.cells[col].off
	case r.last || len(r.cells) == 0:
		return r.eol
	default:
		return r.cells[len(r.cells)-1].off
	}
}
