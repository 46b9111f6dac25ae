// Package modal draws centred dialogs over the editor: a searchable picker
// and a scrollable viewer that can also ask for confirmation.
package modal

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Action is the result of handling a message. nil means no action.
type Action any

// ActionClose signals the modal should be dismissed.
type ActionClose struct{}

// ActionSelect signals an item was chosen.
type ActionSelect struct{ Item Item }

// ActionConfirm signals the question was answered yes.
type ActionConfirm struct{}

// Colors holds the theme colors for the modal.
type Colors struct {
	Fg     string
	Bg     string
	Dim    string
	SelFg  string
	SelBg  string
	Border string
}

// box returns the outer and inner sizes of a dialog covering 80% of the app.
func box(appWidth, appHeight int) (w, h, innerW int) {
	w = max(30, appWidth*80/100)
	h = max(8, appHeight*80/100)
	innerW = max(10, w-4) // border + padding
	return w, h, innerW
}

// frame wraps content in the rounded border and centres it.
func frame(c Colors, appWidth, appHeight, w int, content string) string {
	bg := lipgloss.Color(c.Bg)
	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Border)).
		BorderBackground(bg).
		Foreground(lipgloss.Color(c.Fg)).
		Background(bg).
		Padding(0, 1).
		Width(w).
		Render(content)

	return lipgloss.Place(appWidth, appHeight, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(bg)))
}

// fit truncates s to w cells and pads it with spaces.
func fit(s string, w int) string {
	s = ansi.Truncate(s, w, "…")
	if n := lipgloss.Width(s); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}
