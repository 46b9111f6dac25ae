package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the UI colors of a theme as "#rrggbb" strings. Greys are
// blends from the background toward the foreground.
type Palette struct {
	Bg        string
	Fg        string
	Border    string // dividers, inactive chrome
	Selection string // selected text, active tab
	Dim       string // line numbers, help
	Muted     string // status text
	Accent    string // current match, labels
	Match     string // other matches
	Error     string
}

// ThemePalette derives the palette for a Chroma theme. Unknown themes use
// Chroma's fallback style.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	base := sty.Get(chroma.Background)
	bg := colourOr(base.Background, "#1e1e1e")
	fg := colourOr(base.Colour, "#d4d4d4")
	accent := accentOf(sty, fg)
	errc := colourOr(sty.Get(chroma.Error).Colour, "#e05252")
	if !sty.Get(chroma.Error).Colour.IsSet() {
		errc = colourOr(sty.Get(chroma.GenericDeleted).Colour, "#e05252")
	}

	return Palette{
		Bg:        bg.Hex(),
		Fg:        fg.Hex(),
		Border:    mix(bg, fg, 0.12),
		Selection: mix(bg, fg, 0.22),
		Dim:       mix(bg, fg, 0.30),
		Muted:     mix(bg, fg, 0.50),
		Accent:    accent.Hex(),
		Match:     mix(bg, accent, 0.35),
		Error:     mix(bg, errc, 0.80),
	}
}

func colourOr(c chroma.Colour, fallback string) colorful.Color {
	if c.IsSet() {
		if col, err := colorful.Hex(c.String()); err == nil {
			return col
		}
	}
	col, _ := colorful.Hex(fallback)
	return col
}

func mix(a, b colorful.Color, t float64) string {
	return a.BlendRgb(b, t).Clamped().Hex()
}

// accentTokens are tried first so the accent matches what the theme uses
// for code, not a rarely seen token.
var accentTokens = []chroma.TokenType{
	chroma.Keyword,
	chroma.NameFunction,
	chroma.LiteralString,
	chroma.NameBuiltin,
}

// accentOf returns the most vivid token color, by saturation times value.
func accentOf(sty *chroma.Style, fallback colorful.Color) colorful.Color {
	best, score := fallback, 0.0
	consider := func(tt chroma.TokenType) {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			return
		}
		c, err := colorful.Hex(e.Colour.String())
		if err != nil {
			return
		}
		if _, s, v := c.Hsv(); s*v > score {
			best, score = c, s*v
		}
	}
	for _, tt := range accentTokens {
		consider(tt)
	}
	if score >= 0.25 {
		return best
	}
	for _, tt := range sty.Types() {
		consider(tt)
	}
	return best
}
