package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// renderStatusBar draws the separator and the status line: the document
// and caret position on the left, key hints on the right.
func (m Model) renderStatusBar(b *strings.Builder) {
	st := m.styles
	b.WriteString(st.Border.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')

	left := st.StatusText.Render(" " + m.statusLeft())
	msg, isErr := m.status, m.statusErr
	if hint := m.dropHint(); hint != "" {
		msg, isErr = hint, false
	}
	if msg != "" {
		style := st.StatusDim
		if isErr {
			style = st.Error
		}
		left += st.StatusDim.Render(" · ") + style.Render(msg)
	}

	bindings := m.keys.ShortHelp()
	if m.focus == focusFind || m.focus == focusReplace {
		bindings = m.keys.FindHelp()
	}
	right := m.help.ShortHelpView(bindings) + st.BgFill.Render(" ")

	space := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if space < 1 {
		b.WriteString(fitLine(left, m.width, st.BgFill.Render(" ")))
		return
	}
	b.WriteString(left + st.BgFill.Render(strings.Repeat(" ", space)) + right)
}

// statusLeft describes the active document and caret.
func (m Model) statusLeft() string {
	ly := m.ws.Layout()
	doc := ly.ActiveDocument()
	if doc == nil {
		return ""
	}
	name := doc.Name()
	if doc.IsModified() {
		name += " ●"
	}
	line, col := editorOf(ly.Active()).CursorLineColumn()
	s := fmt.Sprintf("%s  Ln %d, Col %d", name, line, col)
	if !ly.Active().WordWrap() {
		s += "  nowrap"
	}
	return s
}
