package modal

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Viewer is a read-only modal showing scrollable text. In confirm mode it
// asks a yes/no question about the text.
type Viewer struct {
	title   string
	content string
	confirm bool
	scroll  int
	colors  Colors

	lines  []string
	wrapAt int
}

// NewViewer creates a read-only viewer.
func NewViewer(title, content string, colors Colors) *Viewer {
	return &Viewer{title: title, content: content, colors: colors}
}

// NewConfirm creates a viewer that answers ActionConfirm on y or enter and
// ActionClose on n or esc.
func NewConfirm(title, content string, colors Colors) *Viewer {
	v := NewViewer(title, content, colors)
	v.confirm = true
	return v
}

// Title returns the heading.
func (v *Viewer) Title() string { return v.title }

// HandleMsg processes key and wheel events.
func (v *Viewer) HandleMsg(msg tea.Msg) (Action, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		k := msg.Keystroke()
		if v.confirm {
			switch k {
			case "y", "enter":
				return ActionConfirm{}, nil
			case "n", "esc":
				return ActionClose{}, nil
			}
		} else if k == "esc" || k == "q" || k == "enter" {
			return ActionClose{}, nil
		}
		switch k {
		case "up", "k":
			v.scroll--
		case "down", "j":
			v.scroll++
		case "pgup":
			v.scroll -= 10
		case "pgdown":
			v.scroll += 10
		}
		v.scroll = max(0, v.scroll)
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			v.scroll = max(0, v.scroll-1)
		case tea.MouseWheelDown:
			v.scroll++
		}
	}
	return nil, nil
}

// View renders the modal centered in the terminal at appWidth x appHeight.
func (v *Viewer) View(appWidth, appHeight int) string {
	w, h, innerW := box(appWidth, appHeight)
	if v.lines == nil || v.wrapAt != innerW {
		v.lines = nil
		for line := range strings.SplitSeq(v.content, "\n") {
			v.lines = append(v.lines, wrapANSI(line, innerW)...)
		}
		v.wrapAt = innerW
	}

	bg := lipgloss.Color(v.colors.Bg)
	fg := lipgloss.NewStyle().Foreground(lipgloss.Color(v.colors.Fg)).Background(bg)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(v.colors.Dim)).Background(bg)

	bodyH := max(1, h-4) // border + title + divider
	if v.confirm {
		bodyH = max(1, bodyH-2) // divider + answer hint
	}
	maxScroll := max(0, len(v.lines)-bodyH)
	v.scroll = min(v.scroll, maxScroll)

	var hint string
	switch {
	case v.scroll > 0 && v.scroll < maxScroll:
		hint = " ↑↓"
	case v.scroll > 0:
		hint = " ↑"
	case maxScroll > 0:
		hint = " ↓"
	}
	title := fit(v.title, innerW-lipgloss.Width(hint))

	var sb strings.Builder
	sb.WriteString(fg.Bold(true).Render(title))
	sb.WriteString(dim.Render(hint))
	sb.WriteByte('\n')
	sb.WriteString(dim.Render(strings.Repeat("─", innerW)))

	end := min(v.scroll+bodyH, len(v.lines))
	for _, l := range v.lines[v.scroll:end] {
		sb.WriteByte('\n')
		sb.WriteString(fg.Render(fit(l, innerW)))
	}
	for i := end - v.scroll; i < bodyH; i++ {
		sb.WriteByte('\n')
		sb.WriteString(fg.Render(strings.Repeat(" ", innerW)))
	}

	if v.confirm {
		sb.WriteByte('\n')
		sb.WriteString(dim.Render(strings.Repeat("─", innerW)))
		sb.WriteByte('\n')
		sb.WriteString(fg.Render(fit("[y] yes   [n] no", innerW)))
	}
	return frame(v.colors, appWidth, appHeight, w, sb.String())
}
