// Package document holds the editing state of one open file or unsaved buffer.
package document

import (
	"path/filepath"

	"github.com/google/uuid"
)

// ID identifies a document for the lifetime of the process.
type ID string

// Span is a half-open byte range into a document's text.
type Span struct {
	Start int
	End   int
}

// Cursor is the saved caret of a document. Line and Column are 1-indexed;
// Column counts characters. Selection is nil when nothing is selected.
type Cursor struct {
	Line      int
	Column    int
	Selection *Span
}

// Scroll holds the horizontal and vertical scroll offsets of a view.
type Scroll struct {
	X int
	Y int
}

// Document is the unit of persistent editing state. Documents are compared
// by ID only: two documents with identical text are distinct.
type Document struct {
	id      ID
	content string

	rich    string
	hasRich bool

	path       string
	modified   bool
	cursor     Cursor
	scroll     Scroll
	richIntent bool
}

// New creates an untitled document holding content.
func New(content string) *Document {
	return &Document{
		id:      ID(uuid.NewString()),
		content: content,
		cursor:  Cursor{Line: 1, Column: 1},
	}
}

// Open creates a document for a file that was read from path.
func Open(path, content string) *Document {
	d := New(content)
	d.path = path
	return d
}

// OpenRich creates a document for a file whose rich payload is authoritative.
// plain is the plain-text projection of rich.
func OpenRich(path, plain, rich string) *Document {
	d := Open(path, plain)
	d.rich = rich
	d.hasRich = true
	d.richIntent = true
	return d
}

// ID returns the document's identity.
func (d *Document) ID() ID { return d.id }

// Equal reports whether d and other are the same document.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.id == other.id
}

// Content returns the canonical plain text.
func (d *Document) Content() string { return d.content }

// SetContent replaces the plain text.
func (d *Document) SetContent(s string) { d.content = s }

// RichContent returns the rich payload and whether one is present.
func (d *Document) RichContent() (string, bool) { return d.rich, d.hasRich }

// SetRichContent stores a rich payload, which then becomes authoritative.
func (d *Document) SetRichContent(s string) {
	d.rich = s
	d.hasRich = true
}

// ClearRichContent drops the rich payload so the plain text is authoritative
// again. The rich formatting intent is kept.
func (d *Document) ClearRichContent() {
	d.rich = ""
	d.hasRich = false
}

// Authoritative returns the payload used for save and restore.
func (d *Document) Authoritative() string {
	if d.hasRich {
		return d.rich
	}
	return d.content
}

// AuthoritativeLen is the byte length of Authoritative.
func (d *Document) AuthoritativeLen() int {
	if d.hasRich {
		return len(d.rich)
	}
	return len(d.content)
}

// Path returns the file path, or "" for an untitled document.
func (d *Document) Path() string { return d.path }

// SetPath sets the file path.
func (d *Document) SetPath(p string) { d.path = p }

// IsUntitled reports whether the document has never been saved to a file.
func (d *Document) IsUntitled() bool { return d.path == "" }

// Name is the display name used in tab titles.
func (d *Document) Name() string {
	if d.path == "" {
		return "Untitled"
	}
	return filepath.Base(d.path)
}

// IsModified reports whether there are unsaved changes.
func (d *Document) IsModified() bool { return d.modified }

// SetModified sets the unsaved-changes flag.
func (d *Document) SetModified(v bool) { d.modified = v }

// MarkSaved clears the modified flag and, when path is non-empty, records
// the new location.
func (d *Document) MarkSaved(path string) {
	if path != "" {
		d.path = path
	}
	d.modified = false
}

// Cursor returns the saved cursor.
func (d *Document) Cursor() Cursor { return d.cursor }

// SetCursor stores the cursor.
func (d *Document) SetCursor(c Cursor) {
	if c.Line < 1 {
		c.Line = 1
	}
	if c.Column < 1 {
		c.Column = 1
	}
	d.cursor = c
}

// Scroll returns the saved scroll offsets.
func (d *Document) Scroll() Scroll { return d.scroll }

// SetScroll stores the scroll offsets.
func (d *Document) SetScroll(s Scroll) { d.scroll = s }

// HasRichFormatting reports whether the user intends rich formatting for
// this document. The flag is sticky.
func (d *Document) HasRichFormatting() bool { return d.richIntent }

// SetRichFormatting sets the rich formatting intent.
func (d *Document) SetRichFormatting(v bool) { d.richIntent = v }
