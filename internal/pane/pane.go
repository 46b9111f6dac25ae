// Package pane binds an ordered strip of documents to one shared buffer view.
//
// Only the active document is shown in the view. Before the active tab
// changes, the view's state is flushed into the outgoing document; after it
// changes, the incoming document's state is pushed into the view with
// notifications suppressed.
package pane

import (
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/folio/internal/constants"
	"github.com/xonecas/folio/internal/document"
	"github.com/xonecas/folio/internal/view"
)

// Events are the notifications a pane emits. Nil callbacks are skipped.
type Events struct {
	// DocumentChanged fires when a different document becomes active.
	DocumentChanged func(p *Pane, doc *document.Document)
	// DocumentModified fires when a document's modified flag flips.
	DocumentModified func(p *Pane, doc *document.Document, modified bool)
	// Empty fires when the last document is removed.
	Empty func(p *Pane)
}

// Options configures a pane.
type Options struct {
	// WordWrap is the user's soft-wrap preference.
	WordWrap bool
	// LargeDocumentBytes is the size above which word wrap is forced off.
	LargeDocumentBytes int
}

// Tab describes one entry of the tab strip.
type Tab struct {
	Title    string
	Modified bool
	Active   bool
}

// Pane is a tab strip of documents sharing one buffer view.
type Pane struct {
	buf    view.Buffer
	docs   []*document.Document
	active int

	// contentDirty is set when the view reports a text change and cleared
	// after each flush, so unchanged text is never copied back out.
	contentDirty bool

	wordWrap bool
	large    int
	events   Events
}

// New returns an empty pane driving buf.
func New(buf view.Buffer, opts Options) *Pane {
	if opts.LargeDocumentBytes <= 0 {
		opts.LargeDocumentBytes = constants.LargeDocumentBytes
	}
	p := &Pane{
		buf:      buf,
		active:   -1,
		wordWrap: opts.WordWrap,
		large:    opts.LargeDocumentBytes,
	}
	buf.SetObserver(view.Observer{
		OnTextChanged:         p.onTextChanged,
		OnModificationChanged: p.onModificationChanged,
	})
	buf.SetWordWrap(opts.WordWrap)
	return p
}

// SetEvents replaces the notification callbacks.
func (p *Pane) SetEvents(e Events) { p.events = e }

// Detach unregisters the pane from its view.
func (p *Pane) Detach() { p.buf.SetObserver(view.Observer{}) }

// Buffer returns the shared view.
func (p *Pane) Buffer() view.Buffer { return p.buf }

// Count returns the number of documents.
func (p *Pane) Count() int { return len(p.docs) }

// Documents returns the documents in tab order.
func (p *Pane) Documents() []*document.Document { return slices.Clone(p.docs) }

// ActiveIndex returns the index of the active tab, or -1 when empty.
func (p *Pane) ActiveIndex() int { return p.active }

// ActiveDocument returns the document shown in the view, or nil.
func (p *Pane) ActiveDocument() *document.Document { return p.DocumentAt(p.active) }

// DocumentAt returns the document at index, or nil.
func (p *Pane) DocumentAt(index int) *document.Document {
	if index < 0 || index >= len(p.docs) {
		return nil
	}
	return p.docs[index]
}

// IndexOf returns the tab index of doc, or -1.
func (p *Pane) IndexOf(doc *document.Document) int {
	return slices.IndexFunc(p.docs, doc.Equal)
}

// Contains reports whether doc is one of the pane's tabs.
func (p *Pane) Contains(doc *document.Document) bool { return p.IndexOf(doc) >= 0 }

// HasUnsavedChanges reports whether any document is modified.
func (p *Pane) HasUnsavedChanges() bool {
	return slices.ContainsFunc(p.docs, (*document.Document).IsModified)
}

// Tabs describes the tab strip.
func (p *Pane) Tabs() []Tab {
	tabs := make([]Tab, len(p.docs))
	for i, d := range p.docs {
		tabs[i] = Tab{Title: d.Name(), Modified: d.IsModified(), Active: i == p.active}
	}
	return tabs
}

// AddDocument appends doc and returns its index. The first document of an
// empty pane is always activated.
func (p *Pane) AddDocument(doc *document.Document, activate bool) int {
	return p.InsertDocument(len(p.docs), doc, activate)
}

// InsertDocument inserts doc at index, clamped into range, and returns the
// index used. A document already in the pane is not added twice.
func (p *Pane) InsertDocument(index int, doc *document.Document, activate bool) int {
	if i := p.IndexOf(doc); i >= 0 {
		if activate {
			p.SwitchTab(i)
		}
		return i
	}
	index = max(0, min(index, len(p.docs)))
	p.docs = slices.Insert(p.docs, index, doc)
	if p.active >= index {
		p.active++
	}
	if activate || len(p.docs) == 1 {
		p.activate(index)
	}
	return index
}

// RemoveDocument removes doc and reports whether it was present.
func (p *Pane) RemoveDocument(doc *document.Document) bool {
	i := p.IndexOf(doc)
	if i < 0 {
		return false
	}
	return p.RemoveDocumentAt(i) != nil
}

// RemoveDocumentAt removes and returns the document at index, or nil for a
// bad index. Removing the active tab activates its right neighbour, or the
// left one when it was last. The removed document keeps any unflushed edits.
func (p *Pane) RemoveDocumentAt(index int) *document.Document {
	doc := p.DocumentAt(index)
	if doc == nil {
		return nil
	}
	wasActive := index == p.active
	if wasActive {
		p.saveCurrentState()
	}
	p.docs = slices.Delete(p.docs, index, index+1)

	switch {
	case len(p.docs) == 0:
		p.active = -1
		p.clearView()
		if p.events.Empty != nil {
			p.events.Empty(p)
		}
	case wasActive:
		p.active = min(index, len(p.docs)-1)
		p.restoreDocumentState(p.docs[p.active])
		p.emitChanged()
	case index < p.active:
		p.active--
	}
	return doc
}

// SwitchTab activates the tab at index. It is a no-op for the active tab
// or an out-of-range index and reports whether the active tab changed.
func (p *Pane) SwitchTab(index int) bool {
	if index < 0 || index >= len(p.docs) || index == p.active {
		return false
	}
	p.activate(index)
	return true
}

// SetCurrentDocument activates doc and reports whether it is in the pane.
func (p *Pane) SetCurrentDocument(doc *document.Document) bool {
	i := p.IndexOf(doc)
	if i < 0 {
		return false
	}
	p.SwitchTab(i)
	return true
}

// MoveTab reorders the strip. The active document stays active.
func (p *Pane) MoveTab(from, to int) bool {
	if from == to || from < 0 || to < 0 || from >= len(p.docs) || to >= len(p.docs) {
		return false
	}
	doc := p.docs[from]
	p.docs = slices.Delete(p.docs, from, from+1)
	p.docs = slices.Insert(p.docs, to, doc)
	switch {
	case p.active == from:
		p.active = to
	case from < p.active && to >= p.active:
		p.active--
	case from > p.active && to <= p.active:
		p.active++
	}
	return true
}

// SyncFromView flushes the view's state into the active document.
func (p *Pane) SyncFromView() { p.saveCurrentState() }

// RefreshDocument re-reads doc after its stored content changed elsewhere.
// The active document is pushed back into the view.
func (p *Pane) RefreshDocument(doc *document.Document) {
	if !p.Contains(doc) {
		return
	}
	if doc.Equal(p.ActiveDocument()) {
		p.restoreDocumentState(doc)
	}
	if p.events.DocumentModified != nil {
		p.events.DocumentModified(p, doc, doc.IsModified())
	}
}

// WordWrap returns the user's soft-wrap preference.
func (p *Pane) WordWrap() bool { return p.wordWrap }

// SetWordWrap records the preference. It is not applied while the active
// document is over the large-document threshold.
func (p *Pane) SetWordWrap(on bool) {
	p.wordWrap = on
	if doc := p.ActiveDocument(); doc != nil && p.IsLarge(doc) {
		log.Debug().Str("doc", doc.Name()).Msg("word wrap held off for large document")
		return
	}
	p.buf.SetWordWrap(on)
}

// IsLarge reports whether doc is over the large-document threshold.
func (p *Pane) IsLarge(doc *document.Document) bool {
	return doc.AuthoritativeLen() > p.large
}

func (p *Pane) activate(index int) {
	p.saveCurrentState()
	p.active = index
	p.restoreDocumentState(p.docs[index])
	p.emitChanged()
}

func (p *Pane) emitChanged() {
	if p.events.DocumentChanged != nil {
		p.events.DocumentChanged(p, p.docs[p.active])
	}
}

// saveCurrentState copies the view's text, cursor and scroll into the
// active document. Text is copied only when the view reported a change; the
// rich form only for documents that use it.
func (p *Pane) saveCurrentState() {
	doc := p.ActiveDocument()
	if doc == nil {
		return
	}
	if p.contentDirty {
		doc.SetContent(p.buf.Text())
		if _, hasRich := doc.RichContent(); hasRich || doc.HasRichFormatting() {
			doc.SetRichContent(p.buf.RichText())
		}
		p.contentDirty = false
	}

	line, col := p.buf.CursorLineColumn()
	cur := document.Cursor{Line: line, Column: col}
	if start, end, ok := p.buf.Selection(); ok {
		cur.Selection = &document.Span{Start: start, End: end}
	}
	doc.SetCursor(cur)

	x, y := p.buf.Scroll()
	doc.SetScroll(document.Scroll{X: x, Y: y})
}

// restoreDocumentState pushes doc into the view in quiet mode.
func (p *Pane) restoreDocumentState(doc *document.Document) {
	view.Quietly(p.buf, func() {
		if rich, ok := doc.RichContent(); ok {
			p.buf.SetRichText(rich)
		} else {
			p.buf.SetText(doc.Content())
		}
		p.buf.ClearUndoHistory()
		p.buf.SetModified(doc.IsModified())
		p.buf.SetWordWrap(p.wordWrap && !p.IsLarge(doc))

		cur := doc.Cursor()
		off := p.buf.OffsetAt(cur.Line, cur.Column)
		if sel := cur.Selection; sel != nil {
			anchor := sel.Start
			if off == sel.Start {
				anchor = sel.End
			}
			p.buf.SetSelection(anchor, off)
		} else {
			p.buf.SetCursorOffset(off)
		}

		s := doc.Scroll()
		p.buf.SetScroll(s.X, s.Y)
	})
	p.contentDirty = false
}

func (p *Pane) clearView() {
	view.Quietly(p.buf, func() {
		p.buf.SetText("")
		p.buf.ClearUndoHistory()
		p.buf.SetModified(false)
		p.buf.SetHighlights(nil)
	})
	p.contentDirty = false
}

func (p *Pane) onTextChanged() {
	p.contentDirty = true
	doc := p.ActiveDocument()
	if doc == nil || doc.IsModified() {
		return
	}
	doc.SetModified(true)
	if p.events.DocumentModified != nil {
		p.events.DocumentModified(p, doc, true)
	}
}

func (p *Pane) onModificationChanged(modified bool) {
	doc := p.ActiveDocument()
	if doc == nil || doc.IsModified() == modified {
		return
	}
	doc.SetModified(modified)
	if p.events.DocumentModified != nil {
		p.events.DocumentModified(p, doc, modified)
	}
}
