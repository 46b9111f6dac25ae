package tui

import (
	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"

	"github.com/xonecas/folio/internal/highlight"
	"github.com/xonecas/folio/internal/tui/editor"
	"github.com/xonecas/folio/internal/tui/modal"
)

// Styles holds every style the host draws with. All of it derives from the
// syntax theme's palette so the chrome matches the text.
type Styles struct {
	Palette highlight.Palette
	Editor  editor.Styles

	BgFill      lipgloss.Style
	Border      lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	TabDragging lipgloss.Style
	DropTarget  lipgloss.Style
	Label       lipgloss.Style
	StatusText  lipgloss.Style
	StatusDim   lipgloss.Style
	Error       lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffDel     lipgloss.Style
	DiffHunk    lipgloss.Style
}

// NewStyles builds the styles for a Chroma theme.
func NewStyles(theme string) Styles {
	p := highlight.ThemePalette(theme)
	bg := lipgloss.Color(p.Bg)
	fg := lipgloss.Color(p.Fg)
	base := lipgloss.NewStyle().Background(bg).Foreground(fg)

	return Styles{
		Palette:     p,
		Editor:      editor.NewStyles(p),
		BgFill:      base,
		Border:      lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Border)),
		Tab:         lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Muted)),
		TabActive:   lipgloss.NewStyle().Background(lipgloss.Color(p.Selection)).Foreground(fg).Bold(true),
		TabDragging: lipgloss.NewStyle().Background(lipgloss.Color(p.Accent)).Foreground(bg),
		DropTarget:  lipgloss.NewStyle().Background(lipgloss.Color(p.Match)).Foreground(fg),
		Label:       lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Accent)),
		StatusText:  lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Muted)),
		StatusDim:   lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Dim)),
		Error:       lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(p.Error)),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		DiffDel:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim)),
	}
}

// ModalColors adapts the palette for the modal package.
func (s Styles) ModalColors() modal.Colors {
	return modal.Colors{
		Fg:     s.Palette.Fg,
		Bg:     s.Palette.Bg,
		Dim:    s.Palette.Dim,
		SelFg:  s.Palette.Bg,
		SelBg:  s.Palette.Fg,
		Border: s.Palette.Border,
	}
}

// HelpStyles colours the bubbles help view.
func (s Styles) HelpStyles() help.Styles {
	bg := lipgloss.Color(s.Palette.Bg)
	key := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(s.Palette.Muted))
	desc := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color(s.Palette.Dim))
	return help.Styles{
		Ellipsis:       desc,
		ShortKey:       key,
		ShortDesc:      desc,
		ShortSeparator: desc,
		FullKey:        key,
		FullDesc:       desc,
		FullSeparator:  desc,
	}
}
