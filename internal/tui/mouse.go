package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/folio/internal/pane"
)

// ---------------------------------------------------------------------------
// Mouse filter: throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events (15 ms).
// Pass to tea.WithFilter. Never drops clicks or releases.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse handling: dialogs first, then divider, tab strips, editors and the
// find bar. Coordinates are translated via the layout rects.
// ---------------------------------------------------------------------------

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	m := msg.Mouse()
	return m.X, m.Y
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case m.picker != nil:
		return nil
	case m.viewer != nil:
		if wheel, ok := msg.(tea.MouseWheelMsg); ok {
			return m.updateViewer(wheel)
		}
		return nil
	}

	x, y := mouseXY(msg)

	if m.handleDividerDrag(msg, x) {
		return nil
	}
	if m.handleTabDrag(msg, x, y) {
		return nil
	}
	if m.handleEditorDrag(msg, x, y) {
		return nil
	}

	panes := m.layoutModel().Panes()
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		return m.handleClick(ev, panes, x, y)
	case tea.MouseWheelMsg:
		for i, r := range m.ly.editors {
			if inRect(x, y, r) && i < len(panes) {
				editorOf(panes[i]).Update(ev)
			}
		}
	}
	return nil
}

func (m *Model) handleClick(ev tea.MouseClickMsg, panes []*pane.Pane, x, y int) tea.Cmd {
	ly := m.layoutModel()

	for i, r := range m.ly.tabs {
		if !inRect(x, y, r) || i >= len(panes) {
			continue
		}
		p := panes[i]
		idx := tabAt(p, x-r.Min.X, r.Dx())
		if idx < 0 {
			return nil
		}
		switch ev.Button {
		case tea.MouseLeft:
			p.SwitchTab(idx)
			ly.SetActive(p)
			m.focus = focusEditor
			ly.BeginDrag(idx, p)
			m.tabDragPane, m.tabDragFrom, m.tabDragged = p, idx, false
		case tea.MouseMiddle:
			return m.closeTab(p, idx, false)
		}
		return nil
	}

	if ev.Button != tea.MouseLeft {
		return nil
	}

	for i, r := range m.ly.editors {
		if !inRect(x, y, r) || i >= len(panes) {
			continue
		}
		ly.SetActive(panes[i])
		m.focus = focusEditor
		ed := editorOf(panes[i])
		ed.Focus()
		ed.Click(x-r.Min.X, y-r.Min.Y)
		m.dragEditor, m.dragRect = ed, i
		return nil
	}

	if inRect(x, y, m.ly.bar) && m.session.IsOpen() {
		fx := findFieldX(m.ly.bar.Dx())
		switch {
		case x >= fx.caseX:
			m.session.SetCaseSensitive(!m.session.CaseSensitive())
		case x >= fx.status:
		case x >= fx.replace:
			m.focus = focusReplace
		case x >= fx.query:
			m.focus = focusFind
		}
	}
	return nil
}

// handleDividerDrag resizes the panes while the divider is held. It
// reports whether the event was consumed.
func (m *Model) handleDividerDrag(msg tea.MouseMsg, x int) bool {
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		if ev.Button == tea.MouseLeft && !m.ly.divider.Empty() {
			_, y := mouseXY(msg)
			if inRect(x, y, m.ly.divider) {
				m.resizing = true
				return true
			}
		}
	case tea.MouseMotionMsg:
		if m.resizing && m.width > 0 {
			m.layoutModel().SetSizes(float64(x) / float64(m.width))
			return true
		}
	case tea.MouseReleaseMsg:
		if m.resizing {
			m.resizing = false
			return true
		}
	}
	return false
}

// handleTabDrag follows a tab held since a click on the strip and drops it
// on release: within its own strip it is reordered, on another strip it
// moves pane, and over the editor area it splits.
func (m *Model) handleTabDrag(msg tea.MouseMsg, x, y int) bool {
	ly := m.layoutModel()
	if m.tabDragPane == nil {
		return false
	}
	switch msg.(type) {
	case tea.MouseMotionMsg:
		m.tabDragged = true
		m.dragX, m.dragY = x, y
		return true
	case tea.MouseReleaseMsg:
	default:
		return false
	}

	src, from, dragged := m.tabDragPane, m.tabDragFrom, m.tabDragged
	m.tabDragPane, m.tabDragged = nil, false
	if !dragged {
		ly.CancelDrag()
		return true
	}

	panes := ly.Panes()
	for i, r := range m.ly.tabs {
		if !inRect(x, y, r) || i >= len(panes) {
			continue
		}
		target := panes[i]
		idx := tabAt(target, x-r.Min.X, r.Dx())
		if target == src {
			ly.CancelDrag()
			if idx < 0 {
				idx = src.Count() - 1
			}
			src.MoveTab(from, idx)
			return true
		}
		ly.DropOnTabs(target, idx)
		return true
	}
	for _, r := range m.ly.editors {
		if inRect(x, y, r) {
			ly.Drop(x, m.width)
			return true
		}
	}
	ly.CancelDrag()
	return true
}

// handleEditorDrag extends an editor selection started by a click.
func (m *Model) handleEditorDrag(msg tea.MouseMsg, x, y int) bool {
	if m.dragEditor == nil {
		return false
	}
	switch msg.(type) {
	case tea.MouseMotionMsg:
		if m.dragRect < len(m.ly.editors) {
			r := m.ly.editors[m.dragRect]
			m.dragEditor.Drag(x-r.Min.X, y-r.Min.Y)
		}
		return true
	case tea.MouseReleaseMsg:
		m.dragEditor.Release()
		m.dragEditor = nil
		return true
	}
	return false
}
