// Package editor provides the terminal text widget for bubbletea. Text and
// undo history live in an embedded view.Memory; the widget adds keyboard and
// mouse editing, a line-number gutter, Chroma syntax highlighting, soft wrap
// and the selection and find-match overlays.
package editor

import (
	"strconv"

	"charm.land/lipgloss/v2"

	"github.com/xonecas/folio/internal/highlight"
	"github.com/xonecas/folio/internal/view"
)

// Styles are the colours the widget draws with.
type Styles struct {
	// Background ("#rrggbb") is re-applied after every syntax colour reset.
	Background   string
	Text         lipgloss.Style
	LineNumber   lipgloss.Style
	Cursor       lipgloss.Style
	Selection    lipgloss.Style
	Match        lipgloss.Style
	CurrentMatch lipgloss.Style
	Placeholder  lipgloss.Style
}

// NewStyles derives widget styles from a theme palette.
func NewStyles(p highlight.Palette) Styles {
	bg := lipgloss.Color(p.Bg)
	fg := lipgloss.Color(p.Fg)
	return Styles{
		Background:   p.Bg,
		Text:         lipgloss.NewStyle().Background(bg).Foreground(fg),
		LineNumber:   lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Dim)),
		Cursor:       lipgloss.NewStyle().Background(fg).Foreground(bg),
		Selection:    lipgloss.NewStyle().Background(lipgloss.Color(p.Selection)).Foreground(fg),
		Match:        lipgloss.NewStyle().Background(lipgloss.Color(p.Match)).Foreground(fg),
		CurrentMatch: lipgloss.NewStyle().Background(lipgloss.Color(p.Accent)).Foreground(bg).Bold(true),
		Placeholder:  lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Muted)),
	}
}

// Model is a text editor component. It satisfies view.Buffer through the
// embedded Memory, so panes drive it directly.
type Model struct {
	*view.Memory

	// Configuration, set by the parent.
	ReadOnly        bool
	SingleLine      bool   // Enter and pasted newlines are ignored
	ShowLineNumbers bool
	Language        string // Chroma lexer name ("" or "text" = no highlighting)
	SyntaxTheme     string
	Placeholder     string // Shown when empty and blurred
	Styles          Styles

	width  int
	height int
	focus  bool

	dragging   bool
	dragAnchor int
}

// New returns an empty, blurred editor.
func New(styles Styles) *Model {
	return &Model{
		Memory:          view.NewMemory(0),
		ShowLineNumbers: true,
		Styles:          styles,
	}
}

var _ view.Buffer = (*Model)(nil)

// SetSize sets the widget's outer size in cells.
func (m *Model) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.Memory.SetHeight(height)
	m.followCursor()
}

func (m *Model) Width() int { return m.width }

// EnsureVisible scrolls so offset is on screen, taking wrapped rows and
// horizontal scroll into account.
func (m *Model) EnsureVisible(offset int) {
	if m.height <= 0 {
		m.Memory.EnsureVisible(offset)
		return
	}
	m.follow(offset)
}

func (m *Model) Focus() { m.focus = true }

func (m *Model) Blur() {
	m.focus = false
	m.dragging = false
}

func (m *Model) Focused() bool { return m.focus }

// gutterWidth is digits + one space, or 0 without line numbers.
func (m *Model) gutterWidth() int {
	if !m.ShowLineNumbers {
		return 0
	}
	digits := len(strconv.Itoa(m.Lines().Lines()))
	if digits < 2 {
		digits = 2
	}
	return digits + 1
}

// textWidth returns the width available for text content.
func (m *Model) textWidth() int {
	return max(1, m.width-m.gutterWidth())
}
