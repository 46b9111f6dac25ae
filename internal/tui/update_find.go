package tui

import (
	"fmt"
	"slices"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/folio/internal/find"
	"github.com/xonecas/folio/internal/tui/editor"
)

// openFind shows the find bar with the cursor in the given field. A
// single-line selection in the editor seeds the query.
func (m *Model) openFind(f focus) {
	m.prompt = nil
	m.session.Open()
	setField(m.query, m.session.Query())
	setField(m.replace, m.session.Replacement())
	m.histPos = -1
	m.focus = f
}

func (m *Model) closeFind() {
	m.session.Close()
	m.focus = focusEditor
}

// findStep moves to the next or previous match, opening the bar first if
// it is hidden.
func (m *Model) findStep(delta int) {
	if !m.session.IsOpen() {
		m.openFind(focusFind)
	}
	if delta > 0 {
		m.session.FindNext()
	} else {
		m.session.FindPrevious()
	}
	m.rememberQuery()
}

func (m *Model) handleFindKey(msg tea.KeyPressMsg) {
	k := m.keys
	switch {
	case key.Matches(msg, k.CloseFind):
		m.closeFind()
	case key.Matches(msg, k.SwitchField):
		if m.focus == focusFind {
			m.focus = focusReplace
		} else {
			m.focus = focusFind
		}
	case key.Matches(msg, k.Case):
		m.session.SetCaseSensitive(!m.session.CaseSensitive())
	case key.Matches(msg, k.ReplaceOne):
		m.replaceOne()
	case key.Matches(msg, k.ReplaceAll):
		m.replaceAll()
	case key.Matches(msg, k.ReplaceDocs):
		m.replaceInDocuments()
	case m.focus == focusFind && key.Matches(msg, k.HistoryUp):
		m.browseHistory(1)
	case m.focus == focusFind && key.Matches(msg, k.HistoryDown):
		m.browseHistory(-1)
	case msg.Keystroke() == "enter":
		if m.focus == focusReplace {
			m.replaceOne()
		} else {
			m.findStep(1)
		}
	case msg.Keystroke() == "shift+enter":
		m.findStep(-1)
	case m.focus == focusReplace:
		m.editField(m.replace, msg)
	default:
		m.editField(m.query, msg)
	}
}

// editField forwards msg to a find bar field and pushes a changed value
// into the session.
func (m *Model) editField(f *editor.Model, msg tea.Msg) {
	before := f.Text()
	f.Focus()
	f.Update(msg)
	after := f.Text()
	if after == before {
		return
	}
	if f == m.query {
		m.histPos = -1
		m.session.SetQuery(after)
	} else {
		m.session.SetReplacement(after)
	}
}

func (m *Model) replaceOne() {
	m.session.SetReplacement(m.replace.Text())
	m.sessionEdit(func() {
		if !m.session.ReplaceCurrent() {
			m.session.FindNext()
		}
	})
	m.rememberQuery()
}

func (m *Model) replaceAll() {
	m.session.SetReplacement(m.replace.Text())
	m.sessionEdit(func() { m.session.ReplaceAll() })
	m.rememberQuery()
}

// replaceInDocuments previews the replacement across every open document
// and applies it once confirmed.
func (m *Model) replaceInDocuments() {
	query := m.query.Text()
	if query == "" {
		m.setStatus("Enter search text", true)
		return
	}
	repl := m.replace.Text()
	multi := m.ws.Search()
	multi.Search(query, m.session.CaseSensitive())
	n, docs := multi.Summary()
	if n == 0 {
		m.setStatus(multi.SummaryText(), false)
		return
	}
	m.rememberQuery()
	diff := colorDiff(multi.PreviewAll(repl), m.styles)
	m.openConfirm(find.ConfirmMessage(n, docs), diff, func(m *Model) tea.Cmd {
		replaced, files, ok := multi.ReplaceAll(repl, nil)
		if ok {
			m.setStatus(fmt.Sprintf("Replaced %d occurrence(s) in %d file(s)", replaced, files), false)
		}
		m.session.Refresh()
		return nil
	})
}

// rememberQuery records the current query in the persistent history.
func (m *Model) rememberQuery() {
	q := m.session.Query()
	if q == "" {
		return
	}
	m.ws.RecordQuery(q)
	m.history = slices.DeleteFunc(m.history, func(s string) bool { return s == q })
	m.history = slices.Insert(m.history, 0, q)
	m.histPos = -1
}

// browseHistory steps through remembered queries; older is positive.
func (m *Model) browseHistory(delta int) {
	if len(m.history) == 0 {
		return
	}
	pos := max(-1, min(m.histPos+delta, len(m.history)-1))
	if pos == m.histPos {
		return
	}
	m.histPos = pos
	q := ""
	if pos >= 0 {
		q = m.history[pos]
	}
	setField(m.query, q)
	m.session.SetQuery(q)
}

// setField replaces a field's text without recording undo.
func setField(f *editor.Model, s string) {
	if f.Text() == s {
		return
	}
	f.SetText(s)
	f.SetCursorOffset(len(s))
	f.ClearUndoHistory()
}
