package tui

import (
	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	// -- Debounced find ------------------------------------------------------
	case timerMsg:
		m.sched.fire(msg.id)

	// -- File index for the open dialog --------------------------------------
	case filesScannedMsg:
		m.openFilePicker(msg)

	// -- Paste ---------------------------------------------------------------
	case tea.PasteMsg:
		m.handlePaste(msg)

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		cmd = m.handleKeyPress(msg)

	// -- Anything else belongs to the picker (debounce ticks) ----------------
	default:
		if m.picker != nil {
			cmd = m.updatePicker(msg)
		}
	}

	m.afterUpdate()
	return m, tea.Batch(cmd, m.sched.drain())
}

// handlePaste inserts pasted text into whatever has focus.
func (m *Model) handlePaste(msg tea.PasteMsg) {
	switch {
	case m.picker != nil:
		m.updatePicker(msg)
	case m.viewer != nil:
	case m.focus == focusPrompt && m.prompt != nil:
		m.prompt.field.Update(msg)
	case m.focus == focusFind:
		m.editField(m.query, msg)
	case m.focus == focusReplace:
		m.editField(m.replace, msg)
	default:
		m.activeEditor().Update(msg)
	}
}
