// Package find drives search and replace over open documents: a debounced
// session bound to one buffer view, and a search across every document.
package find

import (
	"time"

	"github.com/xonecas/folio/internal/constants"
)

// Options tunes search responsiveness.
type Options struct {
	// Debounce is how long typing must pause before a search runs.
	Debounce time.Duration
	// HighlightThreshold is the match count above which only matches near
	// the viewport are highlighted.
	HighlightThreshold int
	// ReplaceThreshold is the match count at which replace-all switches from
	// grouped per-match edits to one full-text replacement.
	ReplaceThreshold int
	// ViewportMargin extends the highlighted window on both sides, in bytes.
	ViewportMargin int
}

// DefaultOptions returns the built-in tuning.
func DefaultOptions() Options {
	return Options{
		Debounce:           constants.SearchDebounce,
		HighlightThreshold: constants.HighlightThreshold,
		ReplaceThreshold:   constants.ReplaceThreshold,
		ViewportMargin:     constants.ViewportMargin,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Debounce <= 0 {
		o.Debounce = d.Debounce
	}
	if o.HighlightThreshold <= 0 {
		o.HighlightThreshold = d.HighlightThreshold
	}
	if o.ReplaceThreshold <= 0 {
		o.ReplaceThreshold = d.ReplaceThreshold
	}
	if o.ViewportMargin < 0 {
		o.ViewportMargin = d.ViewportMargin
	}
	return o
}
