package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/folio/internal/document"
	"github.com/xonecas/folio/internal/search"
	"github.com/xonecas/folio/internal/tui/modal"
)

// target is the picker value for one match in an open document.
type target struct {
	doc        *document.Document
	start, end int
}

// openPicker searches every open document, seeded with the find bar's
// query, and lists the matches.
func (m *Model) openPicker() tea.Cmd {
	multi := m.ws.Search()
	caseSensitive := m.session.CaseSensitive()
	searchFn := func(query string) ([]modal.Item, string) {
		results := multi.Search(query, caseSensitive)
		return matchItems(results), multi.SummaryText()
	}
	m.picker = modal.NewPicker(searchFn, "Find in open files: ", m.query.Text(), m.styles.ModalColors())
	return nil
}

// matchItems lists one item per match as "name:line" with the trimmed line.
func matchItems(results []search.DocumentMatches) []modal.Item {
	var items []modal.Item
	for _, dm := range results {
		for _, match := range dm.Matches {
			items = append(items, modal.Item{
				Name:  fmt.Sprintf("%s:%d", dm.Document.Name(), match.Line),
				Desc:  strings.TrimSpace(match.LineText),
				Value: target{doc: dm.Document, start: match.Start, end: match.End},
			})
		}
	}
	return items
}

func (m *Model) updatePicker(msg tea.Msg) tea.Cmd {
	action, cmd := m.picker.HandleMsg(msg)
	switch a := action.(type) {
	case modal.ActionClose:
		m.picker = nil
	case modal.ActionSelect:
		m.picker = nil
		switch v := a.Item.Value.(type) {
		case target:
			m.jumpTo(v)
		case openPath:
			m.openFile(string(v))
		}
	}
	return cmd
}

// jumpTo shows a match: its document becomes active in its pane and the
// match is selected and scrolled into view.
func (m *Model) jumpTo(t target) {
	ly := m.layoutModel()
	p := ly.PaneFor(t.doc)
	if p == nil {
		return
	}
	p.SetCurrentDocument(t.doc)
	ly.SetActive(p)
	ed := editorOf(p)
	ed.SetSelection(t.start, t.end)
	ed.EnsureVisible(t.start)
	m.focus = focusEditor
}

// openConfirm asks a yes/no question; onYes runs when it is answered yes.
func (m *Model) openConfirm(title, body string, onYes func(m *Model) tea.Cmd) {
	m.viewer = modal.NewConfirm(title, body, m.styles.ModalColors())
	m.onConfirm = onYes
}

// openHelp lists every key binding.
func (m *Model) openHelp() {
	h := m.help
	h.SetWidth(0)
	m.viewer = modal.NewViewer("Keys", h.FullHelpView(m.keys.FullHelp()), m.styles.ModalColors())
	m.onConfirm = nil
}

func (m *Model) updateViewer(msg tea.Msg) tea.Cmd {
	action, cmd := m.viewer.HandleMsg(msg)
	switch action.(type) {
	case modal.ActionClose:
		m.closeViewer()
	case modal.ActionConfirm:
		onYes := m.onConfirm
		m.closeViewer()
		if onYes != nil {
			return tea.Batch(cmd, onYes(m))
		}
	}
	return cmd
}

func (m *Model) closeViewer() {
	m.viewer = nil
	m.onConfirm = nil
}
