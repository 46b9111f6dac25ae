package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/folio/internal/document"
	"github.com/xonecas/folio/internal/pane"
	"github.com/xonecas/folio/internal/split"
	"github.com/xonecas/folio/internal/workspace"
)

// handleKeyPress routes a key to the open dialog, the prompt, the
// application shortcuts, the find bar or the active editor, in that order.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	m.setStatus("", false)

	switch {
	case m.picker != nil:
		return m.updatePicker(msg)
	case m.viewer != nil:
		return m.updateViewer(msg)
	case m.focus == focusPrompt && m.prompt != nil:
		return m.handlePromptKey(msg)
	}

	if cmd, handled := m.handleGlobalKey(msg); handled {
		return cmd
	}

	if m.focus == focusFind || m.focus == focusReplace {
		m.handleFindKey(msg)
		return nil
	}
	m.activeEditor().Update(msg)
	return nil
}

func (m *Model) handleGlobalKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	k := m.keys
	ly := m.layoutModel()

	switch {
	case key.Matches(msg, k.Quit):
		return m.quit(), true
	case key.Matches(msg, k.Save):
		return m.save(ly.ActiveDocument(), false), true
	case key.Matches(msg, k.SaveAs):
		return m.save(ly.ActiveDocument(), true), true
	case key.Matches(msg, k.New):
		m.ws.NewDocument()
		m.focus = focusEditor
	case key.Matches(msg, k.Open):
		return scanFiles(), true
	case key.Matches(msg, k.Close):
		p := ly.Active()
		return m.closeTab(p, p.ActiveIndex(), false), true
	case key.Matches(msg, k.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, k.PrevTab):
		m.cycleTab(-1)
	case key.Matches(msg, k.OtherPane):
		if ly.IsSplit() {
			ly.SetActive(ly.Pane(1 - ly.IndexOf(ly.Active())))
		}
	case key.Matches(msg, k.Split):
		if !ly.CreateSplit(ly.ActiveDocument(), split.EdgeRight) {
			m.setStatus("Split needs a single pane with at least two tabs", true)
		}
	case key.Matches(msg, k.Merge):
		ly.MergePanes()
	case key.Matches(msg, k.Swap):
		ly.SwapPanes()
	case key.Matches(msg, k.Find):
		m.openFind(focusFind)
	case key.Matches(msg, k.Replace):
		m.openFind(focusReplace)
	case key.Matches(msg, k.FindNext):
		m.findStep(1)
	case key.Matches(msg, k.FindPrev):
		m.findStep(-1)
	case key.Matches(msg, k.FindAll):
		return m.openPicker(), true
	case key.Matches(msg, k.Outline):
		m.openOutline()
	case key.Matches(msg, k.WordWrap):
		ly.SetWordWrap(!ly.Active().WordWrap())
	case key.Matches(msg, k.Help):
		m.openHelp()
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) cycleTab(delta int) {
	p := m.layoutModel().Active()
	if n := p.Count(); n > 1 {
		p.SwitchTab(((p.ActiveIndex()+delta)%n + n) % n)
	}
}

// save writes doc, asking for a path when it is untitled or when asked to.
func (m *Model) save(doc *document.Document, askPath bool) tea.Cmd {
	if doc == nil {
		return nil
	}
	if askPath || doc.IsUntitled() {
		initial := doc.Path()
		if initial == "" {
			initial = workingDir()
		}
		m.openPrompt("Save as: ", initial, func(m *Model, path string) tea.Cmd {
			if err := m.ws.SaveAs(doc, path); err != nil {
				m.setStatus(err.Error(), true)
				return nil
			}
			m.setStatus("Saved "+doc.Name(), false)
			return nil
		})
		return nil
	}
	if err := m.ws.Save(doc); err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	m.setStatus("Saved "+doc.Name(), false)
	return nil
}

// closeTab closes the tab at index, asking first when it has unsaved
// changes. Closing the last tab quits.
func (m *Model) closeTab(p *pane.Pane, index int, force bool) tea.Cmd {
	switch m.ws.CloseTab(p, index, force) {
	case workspace.NeedsConfirm:
		doc := p.DocumentAt(index)
		m.openConfirm(fmt.Sprintf("Close %s without saving?", doc.Name()),
			"Unsaved changes will be lost.",
			func(m *Model) tea.Cmd { return m.closeTab(p, index, true) })
	case workspace.CloseApp:
		return tea.Quit
	}
	return nil
}

// quit exits, asking first when any document has unsaved changes.
func (m *Model) quit() tea.Cmd {
	if !m.ws.HasUnsavedChanges() {
		return tea.Quit
	}
	var names string
	for _, doc := range m.ws.Documents() {
		if doc.IsModified() {
			names += "  " + doc.Name() + "\n"
		}
	}
	m.openConfirm("Quit without saving?", "Modified documents:\n"+names,
		func(*Model) tea.Cmd { return tea.Quit })
	return nil
}

func (m *Model) openPrompt(label, initial string, submit func(m *Model, value string) tea.Cmd) {
	f := newField(m.styles, "")
	f.SetText(initial)
	f.SetCursorOffset(len(initial))
	f.ClearUndoHistory()
	m.prompt = &prompt{label: label, field: f, submit: submit}
	m.focus = focusPrompt
}

func (m *Model) handlePromptKey(msg tea.KeyPressMsg) tea.Cmd {
	pr := m.prompt
	switch msg.Keystroke() {
	case "esc":
		m.closePrompt()
		return nil
	case "enter":
		m.closePrompt()
		if value := pr.field.Text(); value != "" {
			return pr.submit(m, value)
		}
		return nil
	}
	pr.field.Update(msg)
	return nil
}

func (m *Model) closePrompt() {
	m.prompt = nil
	m.focus = focusEditor
	if m.session.IsOpen() {
		m.focus = focusFind
	}
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd + string(filepath.Separator)
}
