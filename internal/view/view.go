// Package view defines the text buffer view the editing session drives.
//
// A Buffer holds and renders the text of whichever document is active in a
// pane. Offsets are byte offsets into Text; cursor lines and columns are
// 1-indexed with columns counted in characters.
package view

// Highlight is a visual range drawn over the text, typically a search match.
type Highlight struct {
	Start   int
	End     int
	Current bool
}

// Observer receives change notifications from a Buffer. Nil callbacks are
// skipped.
type Observer struct {
	OnTextChanged         func()
	OnModificationChanged func(modified bool)
	OnCursorMoved         func(offset int)
}

// Buffer is a widget capable of holding, editing and rendering text.
type Buffer interface {
	Text() string
	SetText(s string)
	// RichText returns the formatted representation of the text. For a
	// plain buffer this is a conversion and may be expensive.
	RichText() string
	SetRichText(s string)

	CursorOffset() int
	SetCursorOffset(offset int)
	CursorLineColumn() (line, column int)
	OffsetAt(line, column int) int

	// Selection returns the ordered selection bounds; ok is false when
	// nothing is selected.
	Selection() (start, end int, ok bool)
	// SetSelection selects from anchor to active, leaving the cursor at
	// active.
	SetSelection(anchor, active int)
	ClearSelection()

	Scroll() (x, y int)
	SetScroll(x, y int)
	EnsureVisible(offset int)
	// VisibleRange returns the offsets of the first and last visible bytes.
	VisibleRange() (first, last int)

	IsModified() bool
	SetModified(modified bool)
	Undo() bool
	Redo() bool
	ClearUndoHistory()

	// Replace swaps text[start:end] for text and records one undo step,
	// or joins the group opened by BeginEdit.
	Replace(start, end int, text string)
	BeginEdit()
	EndEdit()

	SetHighlights(hl []Highlight)
	WordWrap() bool
	SetWordWrap(on bool)

	SetObserver(o Observer)
	// SetQuiet toggles notification suppression and returns the previous
	// setting.
	SetQuiet(quiet bool) bool
}

// Quietly runs fn with b's notifications suppressed and restores the previous
// setting on every exit path, including panics.
func Quietly(b Buffer, fn func()) {
	prev := b.SetQuiet(true)
	defer b.SetQuiet(prev)
	fn()
}

// Grouped runs fn inside one grouped edit so its replacements undo as a
// single step.
func Grouped(b Buffer, fn func()) {
	b.BeginEdit()
	defer b.EndEdit()
	fn()
}
