package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/folio/internal/pane"
)

const maxTabTitle = 24

// tabLabel is the text of one tab, with a dot for unsaved changes.
func tabLabel(t pane.Tab) string {
	title := ansi.Truncate(t.Title, maxTabTitle, "…")
	if t.Modified {
		return " " + title + " ● "
	}
	return " " + title + " "
}

// tabSpan is the horizontal extent of a tab within its strip.
type tabSpan struct{ x0, x1 int }

// tabSpans places the tabs of p in a strip of the given width. When they
// do not fit, the strip is shifted left just enough to show the active tab.
func tabSpans(p *pane.Pane, width int) []tabSpan {
	tabs := p.Tabs()
	spans := make([]tabSpan, len(tabs))
	x := 0
	for i, t := range tabs {
		w := ansi.StringWidth(tabLabel(t))
		spans[i] = tabSpan{x, x + w}
		x += w
	}
	if a := p.ActiveIndex(); a >= 0 && a < len(spans) && spans[a].x1 > width {
		shift := spans[a].x1 - width
		for i := range spans {
			spans[i].x0 -= shift
			spans[i].x1 -= shift
		}
	}
	return spans
}

// tabAt returns the tab under strip column x, or -1.
func tabAt(p *pane.Pane, x, width int) int {
	for i, s := range tabSpans(p, width) {
		if x >= s.x0 && x < s.x1 {
			return i
		}
	}
	return -1
}

// renderTabs draws the tab strip of pane index i.
func (m *Model) renderTabs(i int, p *pane.Pane, width int) string {
	st := m.styles
	ly := m.layoutModel()
	focused := p == ly.Active() && m.focus == focusEditor

	var b strings.Builder
	for ti, t := range p.Tabs() {
		style := st.Tab
		switch {
		case m.tabDragged && p == m.tabDragPane && ti == m.tabDragFrom:
			style = st.TabDragging
		case t.Active && (focused || !ly.IsSplit()):
			style = st.TabActive
		case t.Active:
			style = st.TabActive.Bold(false)
		}
		b.WriteString(style.Render(tabLabel(t)))
	}

	line := b.String()
	shift := 0
	if spans := tabSpans(p, width); len(spans) > 0 {
		shift = -spans[0].x0
	}
	line = ansi.Cut(line, shift, shift+width)

	fill := st.BgFill
	if m.tabDragged && m.tabDropTarget(i) {
		fill = st.DropTarget
	}
	if pad := width - ansi.StringWidth(line); pad > 0 {
		line += fill.Render(strings.Repeat(" ", pad))
	}
	return line
}

// tabDropTarget reports whether the dragged tab is over the strip of pane
// index i and would move there.
func (m *Model) tabDropTarget(i int) bool {
	if i >= len(m.ly.tabs) || !inRect(m.dragX, m.dragY, m.ly.tabs[i]) {
		return false
	}
	return m.layoutModel().Pane(i) != m.tabDragPane
}

// dropHint names the split a drop at the pointer would create, or "".
func (m *Model) dropHint() string {
	if !m.tabDragged {
		return ""
	}
	for _, r := range m.ly.editors {
		if inRect(m.dragX, m.dragY, r) {
			if edge, ok := m.layoutModel().CanSplitAt(m.dragX, m.width); ok {
				return "Drop to split " + edge.String()
			}
		}
	}
	return ""
}
