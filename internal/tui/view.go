package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	content := m.renderContent()
	switch {
	case m.picker != nil:
		content = m.picker.View(m.width, m.height)
	case m.viewer != nil:
		content = m.viewer.View(m.width, m.height)
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.WindowTitle = m.windowTitle()
	return v
}

func (m Model) windowTitle() string {
	doc := m.ws.Layout().ActiveDocument()
	if doc == nil {
		return "folio"
	}
	title := doc.Name()
	if doc.IsModified() {
		title += " ●"
	}
	return title + " - folio"
}

// renderContent draws the tab strips and editors side by side, then the
// bar and the status rows.
func (m Model) renderContent() string {
	if m.width == 0 || len(m.ly.editors) == 0 {
		return ""
	}

	panes := m.ws.Layout().Panes()
	var b strings.Builder

	for i, p := range panes {
		if i >= len(m.ly.tabs) {
			break
		}
		if i > 0 {
			b.WriteString(m.styles.Border.Render("│"))
		}
		b.WriteString(m.renderTabs(i, p, m.ly.tabs[i].Dx()))
	}
	b.WriteByte('\n')

	views := make([][]string, len(panes))
	for i, p := range panes {
		views[i] = strings.Split(editorOf(p).View(), "\n")
	}
	rows := m.ly.editors[0].Dy()
	for row := 0; row < rows; row++ {
		for i := range panes {
			if i >= len(m.ly.editors) {
				break
			}
			if i > 0 {
				b.WriteString(m.styles.Border.Render("│"))
			}
			w := m.ly.editors[i].Dx()
			line := ""
			if row < len(views[i]) {
				line = views[i][row]
			}
			b.WriteString(fitLine(line, w, m.styles.BgFill.Render(" ")))
		}
		b.WriteByte('\n')
	}

	if m.barVisible() {
		b.WriteString(m.renderBar())
		b.WriteByte('\n')
	}
	m.renderStatusBar(&b)
	return b.String()
}
