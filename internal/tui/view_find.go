package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	findLabel    = " Find "
	replaceLabel = " Replace "
	caseLabel    = " Aa "
	findStatusW  = 24
)

// barCols are the column positions of the find bar's parts.
type barCols struct {
	query, replace, status, caseX int
	queryW, replaceW              int
}

// findFieldX lays the find bar out across width columns. The two fields
// share what the labels and status leave.
func findFieldX(width int) barCols {
	fixed := len(findLabel) + len(replaceLabel) + len(caseLabel) + findStatusW
	rest := max(2, width-fixed)
	var c barCols
	c.queryW = rest / 2
	c.replaceW = rest - c.queryW
	c.query = len(findLabel)
	c.replace = c.query + c.queryW + len(replaceLabel)
	c.status = c.replace + c.replaceW
	c.caseX = c.status + findStatusW
	return c
}

// sizeBar fits the bar's fields to the current width.
func (m *Model) sizeBar() {
	if m.prompt != nil {
		m.prompt.field.SetSize(max(1, m.width-ansi.StringWidth(m.prompt.label)), barRows)
		return
	}
	c := findFieldX(m.width)
	m.query.SetSize(c.queryW, barRows)
	m.replace.SetSize(c.replaceW, barRows)
}

// renderBar draws the prompt or the find bar.
func (m *Model) renderBar() string {
	st := m.styles
	if pr := m.prompt; pr != nil {
		return st.Label.Render(pr.label) + pr.field.View()
	}

	status := m.session.Status()
	statusStyle := st.StatusText
	if status == "No matches found" {
		statusStyle = st.Error
	}
	status = " " + ansi.Truncate(status, findStatusW-1, "…")
	status += strings.Repeat(" ", max(0, findStatusW-ansi.StringWidth(status)))

	caseStyle := st.StatusDim
	if m.session.CaseSensitive() {
		caseStyle = st.TabActive
	}

	line := st.Label.Render(findLabel) + m.query.View() +
		st.Label.Render(replaceLabel) + m.replace.View() +
		statusStyle.Render(status) + caseStyle.Render(caseLabel)
	return fitLine(line, m.width, st.BgFill.Render(" "))
}

// fitLine truncates or pads a styled line to exactly width cells.
func fitLine(line string, width int, pad string) string {
	w := ansi.StringWidth(line)
	if w > width {
		return ansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(pad, width-w)
}
