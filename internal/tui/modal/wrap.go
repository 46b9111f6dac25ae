package modal

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/folio/internal/highlight"
)

// wrapANSI wraps a styled line to width cells. Every resulting line opens
// the styles active where it starts and closes them at its end, so lines
// can be padded and drawn independently.
func wrapANSI(s string, width int) []string {
	if width <= 0 || s == "" {
		return []string{s}
	}
	wrapped := ansi.Hardwrap(ansi.Wordwrap(s, width, ""), width, true)
	lines := highlight.SplitLines(wrapped)
	for i := range len(lines) - 1 {
		if strings.Contains(lines[i], "\x1b[") {
			lines[i] += ansi.ResetStyle
		}
	}
	return lines
}
