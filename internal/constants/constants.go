// Package constants holds compile-time defaults. Every value here can be
// overridden from the config file.
package constants

import "time"

// SyntaxTheme is the default Chroma theme for the editor and UI chrome.
//
// Dark themes that read well in terminals include github-dark, monokai,
// dracula, nord, gruvbox, onedark, catppuccin-mocha, tokyonight-night and
// vulcan. Light themes include github, solarized-light, catppuccin-latte and
// vs.
const SyntaxTheme = "github-dark"

// Search tuning.
const (
	// SearchDebounce is the pause after the last keystroke before a search runs.
	SearchDebounce = 300 * time.Millisecond

	// HighlightThreshold is the match count above which highlighting is
	// limited to the viewport.
	HighlightThreshold = 1000

	// ReplaceThreshold is the match count at which replace-all edits the
	// extracted text in one operation instead of per match.
	ReplaceThreshold = 1000

	// ViewportMargin widens the highlighted window beyond the visible text.
	ViewportMargin = 4096
)

// LargeDocumentBytes is the size above which word wrap is forced off.
const LargeDocumentBytes = 1_000_000

// MmapThreshold is the file size above which files are memory mapped on read.
const MmapThreshold = 1_000_000

// SessionTTLHours is how long remembered cursor positions are kept.
const SessionTTLHours = 24 * 30

// RecentQueries is how many find queries are kept in history.
const RecentQueries = 50
