// Package split arranges one or two panes side by side and moves documents
// between them.
package split

import (
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/folio/internal/document"
	"github.com/xonecas/folio/internal/pane"
)

// MaxPanes is the most panes a layout holds.
const MaxPanes = 2

// Edge is the side of the layout a dragged tab was dropped on.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
)

func (e Edge) String() string {
	if e == EdgeLeft {
		return "left"
	}
	return "right"
}

// EdgeAt maps a horizontal drop position to an edge. The midpoint counts
// as the right edge.
func EdgeAt(x, width int) Edge {
	if float64(x) < float64(width)/2 {
		return EdgeLeft
	}
	return EdgeRight
}

// Factory creates an empty pane with its own view.
type Factory func() *pane.Pane

// Events are the notifications a layout emits. Nil callbacks are skipped.
type Events struct {
	ActiveDocumentChanged func(doc *document.Document)
	DocumentModified      func(doc *document.Document, modified bool)
	// LayoutChanged fires when panes are added, removed or reordered.
	LayoutChanged func()
}

// Layout owns one or two panes. It never holds zero.
type Layout struct {
	panes   []*pane.Pane
	sizes   []float64
	active  *pane.Pane
	newPane Factory
	events  Events

	dragIndex  int
	dragSource *pane.Pane
}

// New returns a layout with one empty pane made by factory.
func New(factory Factory) *Layout {
	l := &Layout{newPane: factory, dragIndex: -1}
	p := factory()
	l.wire(p)
	l.panes = []*pane.Pane{p}
	l.sizes = []float64{1}
	l.active = p
	return l
}

// SetEvents replaces the notification callbacks.
func (l *Layout) SetEvents(e Events) { l.events = e }

// Panes returns the panes from left to right.
func (l *Layout) Panes() []*pane.Pane { return slices.Clone(l.panes) }

// Pane returns the pane at index, or nil.
func (l *Layout) Pane(index int) *pane.Pane {
	if index < 0 || index >= len(l.panes) {
		return nil
	}
	return l.panes[index]
}

// IndexOf returns the position of p, or -1.
func (l *Layout) IndexOf(p *pane.Pane) int { return slices.Index(l.panes, p) }

// Sizes returns the proportional width of each pane.
func (l *Layout) Sizes() []float64 { return slices.Clone(l.sizes) }

// SetSizes sets the proportion of the first pane in a split.
func (l *Layout) SetSizes(first float64) {
	if !l.IsSplit() {
		return
	}
	first = max(0.1, min(first, 0.9))
	l.sizes = []float64{first, 1 - first}
}

// IsSplit reports whether two panes are shown.
func (l *Layout) IsSplit() bool { return len(l.panes) > 1 }

// Active returns the pane with focus.
func (l *Layout) Active() *pane.Pane { return l.active }

// SetActive focuses p and reports whether it belongs to the layout.
func (l *Layout) SetActive(p *pane.Pane) bool {
	if l.IndexOf(p) < 0 {
		return false
	}
	if l.active != p {
		l.active = p
		if doc := p.ActiveDocument(); doc != nil && l.events.ActiveDocumentChanged != nil {
			l.events.ActiveDocumentChanged(doc)
		}
	}
	return true
}

// ActiveDocument returns the active document of the active pane.
func (l *Layout) ActiveDocument() *document.Document {
	return l.active.ActiveDocument()
}

// Documents returns every document, pane by pane in tab order.
func (l *Layout) Documents() []*document.Document {
	var out []*document.Document
	for _, p := range l.panes {
		out = append(out, p.Documents()...)
	}
	return out
}

// PaneFor returns the pane holding doc, or nil.
func (l *Layout) PaneFor(doc *document.Document) *pane.Pane {
	for _, p := range l.panes {
		if p.Contains(doc) {
			return p
		}
	}
	return nil
}

// AddDocument opens doc as the active tab of the active pane.
func (l *Layout) AddDocument(doc *document.Document) {
	l.active.AddDocument(doc, true)
}

// HasUnsavedChanges reports whether any pane holds a modified document.
func (l *Layout) HasUnsavedChanges() bool {
	return slices.ContainsFunc(l.panes, (*pane.Pane).HasUnsavedChanges)
}

// SetWordWrap sets the wrap preference of every pane.
func (l *Layout) SetWordWrap(on bool) {
	for _, p := range l.panes {
		p.SetWordWrap(on)
	}
}

// SyncAll flushes every pane's view into its active document.
func (l *Layout) SyncAll() {
	for _, p := range l.panes {
		p.SyncFromView()
	}
}

// CreateSplit moves doc into a new pane at edge. It requires an unsplit
// layout and a source pane that keeps at least one other document.
func (l *Layout) CreateSplit(doc *document.Document, edge Edge) bool {
	if l.IsSplit() {
		return false
	}
	src := l.PaneFor(doc)
	if src == nil || src.Count() <= 1 {
		return false
	}

	src.SyncFromView()
	src.RemoveDocument(doc)

	np := l.newPane()
	l.wire(np)
	if edge == EdgeLeft {
		l.panes = []*pane.Pane{np, src}
	} else {
		l.panes = []*pane.Pane{src, np}
	}
	l.sizes = []float64{0.5, 0.5}
	np.AddDocument(doc, true)
	l.active = np

	log.Debug().Str("doc", doc.Name()).Stringer("edge", edge).Msg("split created")
	l.emitLayout()
	return true
}

// MergePanes moves every document of the second pane into the first, in
// order and without activating them, and removes the second pane.
func (l *Layout) MergePanes() bool {
	if !l.IsSplit() {
		return false
	}
	target, source := l.panes[0], l.panes[1]
	source.SyncFromView()
	for _, doc := range source.Documents() {
		target.AddDocument(doc, false)
	}
	l.removePane(source)
	l.active = target
	return true
}

// SwapPanes exchanges the two panes and their sizes.
func (l *Layout) SwapPanes() bool {
	if !l.IsSplit() {
		return false
	}
	l.SyncAll()
	l.panes[0], l.panes[1] = l.panes[1], l.panes[0]
	l.sizes[0], l.sizes[1] = l.sizes[1], l.sizes[0]
	l.emitLayout()
	return true
}

// TransferDocument moves doc from one pane to another, inserting it at
// index or appending when index is negative, and focuses the target.
func (l *Layout) TransferDocument(doc *document.Document, from, to *pane.Pane, index int) bool {
	if from == nil || to == nil || from == to || doc == nil {
		return false
	}
	if l.IndexOf(from) < 0 || l.IndexOf(to) < 0 || !from.Contains(doc) {
		return false
	}

	from.SyncFromView()
	from.RemoveDocument(doc)
	if index >= 0 {
		to.InsertDocument(index, doc, true)
	} else {
		to.AddDocument(doc, true)
	}
	l.active = to
	return true
}

func (l *Layout) wire(p *pane.Pane) {
	p.SetEvents(pane.Events{
		DocumentChanged:  l.onDocumentChanged,
		DocumentModified: l.onDocumentModified,
		Empty:            l.onPaneEmpty,
	})
}

func (l *Layout) removePane(p *pane.Pane) {
	i := l.IndexOf(p)
	if i < 0 {
		return
	}
	p.Detach()
	l.panes = slices.Delete(l.panes, i, i+1)
	l.sizes = []float64{1}
	if l.active == p {
		l.active = l.panes[0]
	}
	l.emitLayout()
}

func (l *Layout) onDocumentChanged(p *pane.Pane, doc *document.Document) {
	if l.IndexOf(p) >= 0 {
		l.active = p
	}
	if l.events.ActiveDocumentChanged != nil {
		l.events.ActiveDocumentChanged(doc)
	}
}

func (l *Layout) onDocumentModified(_ *pane.Pane, doc *document.Document, modified bool) {
	if l.events.DocumentModified != nil {
		l.events.DocumentModified(doc, modified)
	}
}

// onPaneEmpty removes an emptied pane unless it is the last one.
func (l *Layout) onPaneEmpty(p *pane.Pane) {
	if len(l.panes) > 1 {
		l.removePane(p)
	}
}

func (l *Layout) emitLayout() {
	if l.events.LayoutChanged != nil {
		l.events.LayoutChanged()
	}
}
