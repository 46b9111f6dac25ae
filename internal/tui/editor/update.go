package editor

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Update handles keyboard, paste and wheel input. Clicks and drags need
// widget-relative coordinates and go through Click, Drag and Release.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !m.focus {
			return nil
		}
		m.handleKey(msg)
		m.followCursor()

	case tea.PasteMsg:
		if !m.focus {
			return nil
		}
		m.InsertText(msg.Content)
		m.followCursor()

	case tea.MouseWheelMsg:
		x, y := m.Scroll()
		switch msg.Button {
		case tea.MouseWheelUp:
			m.SetScroll(x, y-3)
		case tea.MouseWheelDown:
			m.SetScroll(x, y+3)
		}
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) {
	key := msg.Keystroke()
	off := m.CursorOffset()
	extend := strings.HasPrefix(key, "shift+")
	nav := strings.TrimPrefix(key, "shift+")

	switch nav {
	case "up":
		m.moveTo(m.vertical(off, -1), extend)
		return
	case "down":
		m.moveTo(m.vertical(off, 1), extend)
		return
	case "left":
		m.moveTo(m.prevRune(off), extend)
		return
	case "right":
		m.moveTo(m.nextRune(off), extend)
		return
	case "home", "ctrl+a":
		m.moveTo(m.lineStart(off), extend)
		return
	case "end", "ctrl+e":
		m.moveTo(m.lineEnd(off), extend)
		return
	case "pgup":
		m.moveTo(m.vertical(off, -m.height), extend)
		return
	case "pgdown":
		m.moveTo(m.vertical(off, m.height), extend)
		return
	case "ctrl+home":
		m.moveTo(0, extend)
		return
	case "ctrl+end":
		m.moveTo(m.Len(), extend)
		return
	}

	switch key {
	case "backspace", "ctrl+h":
		m.deleteBack()
	case "delete", "ctrl+d":
		m.deleteForward()
	case "enter":
		m.insertNewline()
	case "tab":
		m.tabIndent()
	case "alt+a":
		m.SelectAll()
	case "ctrl+z":
		if !m.ReadOnly {
			m.Undo()
		}
	case "ctrl+y", "ctrl+shift+z":
		if !m.ReadOnly {
			m.Redo()
		}
	default:
		if msg.Text != "" {
			m.InsertText(msg.Text)
		}
	}
}

// Click places the caret at widget-relative x, y and starts a drag.
func (m *Model) Click(x, y int) {
	off := m.offsetAt(x, y)
	m.SetCursorOffset(off)
	m.dragging = true
	m.dragAnchor = off
}

// Drag extends the selection from the click point to x, y.
func (m *Model) Drag(x, y int) {
	if !m.dragging {
		return
	}
	m.SetSelection(m.dragAnchor, m.offsetAt(x, y))
	m.followCursor()
}

// Release ends a drag.
func (m *Model) Release() { m.dragging = false }
