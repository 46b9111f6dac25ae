// Package workspace ties documents, panes, files and remembered session
// state into the editing session a front end drives.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/folio/internal/constants"
	"github.com/xonecas/folio/internal/document"
	"github.com/xonecas/folio/internal/fileio"
	"github.com/xonecas/folio/internal/find"
	"github.com/xonecas/folio/internal/pane"
	"github.com/xonecas/folio/internal/split"
	"github.com/xonecas/folio/internal/store"
)

// ErrUntitled is returned by Save for a document that has no path yet.
var ErrUntitled = errors.New("document has no file path")

// CloseResult is the outcome of CloseTab.
type CloseResult int

const (
	// Unchanged means there was no tab at the index.
	Unchanged CloseResult = iota
	// Closed means the tab was removed.
	Closed
	// NeedsConfirm means the document has unsaved changes and force was false.
	NeedsConfirm
	// CloseApp means the tab is the last one; the caller should exit.
	CloseApp
)

func (r CloseResult) String() string {
	switch r {
	case Closed:
		return "closed"
	case NeedsConfirm:
		return "needs confirm"
	case CloseApp:
		return "close app"
	}
	return "unchanged"
}

// Options configures a workspace.
type Options struct {
	// RememberPositions persists cursor and scroll per file.
	RememberPositions bool
	Find              find.Options
}

// Workspace is the application-level editing session.
type Workspace struct {
	layout *split.Layout
	store  *store.Store
	opts   Options
	multi  *find.Multi
}

// New returns a workspace over layout. st may be nil, in which case
// nothing is remembered between runs.
func New(layout *split.Layout, st *store.Store, opts Options) *Workspace {
	w := &Workspace{layout: layout, store: st, opts: opts}
	w.multi = find.NewMulti(layout.Documents, w.locate, opts.Find)
	return w
}

// Layout returns the pane arrangement.
func (w *Workspace) Layout() *split.Layout { return w.layout }

// Documents returns every open document.
func (w *Workspace) Documents() []*document.Document { return w.layout.Documents() }

// HasUnsavedChanges reports whether any open document is modified.
func (w *Workspace) HasUnsavedChanges() bool { return w.layout.HasUnsavedChanges() }

// Search returns the multi-document search over the open documents.
func (w *Workspace) Search() *find.Multi { return w.multi }

// locate returns the pane holding doc. A missing pane is an untyped nil so
// callers can compare the interface against nil.
func (w *Workspace) locate(doc *document.Document) find.Owner {
	p := w.layout.PaneFor(doc)
	if p == nil {
		return nil
	}
	return p
}

// NewDocument opens an empty untitled document in the active pane.
func (w *Workspace) NewDocument() *document.Document {
	doc := document.New("")
	w.layout.AddDocument(doc)
	return doc
}

// Open shows the file at path. A file that is already open is activated
// in its pane. Read failures are returned as *fileio.Error and leave the
// session untouched.
func (w *Workspace) Open(path string) (*document.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	if doc := w.find(abs); doc != nil {
		p := w.layout.PaneFor(doc)
		p.SetCurrentDocument(doc)
		w.layout.SetActive(p)
		return doc, nil
	}

	raw, err := fileio.Read(abs)
	if err != nil {
		log.Warn().Err(err).Str("path", abs).Msg("open failed")
		return nil, err
	}

	var doc *document.Document
	if fileio.IsRich(abs) {
		doc = document.OpenRich(abs, ansi.Strip(raw), raw)
	} else {
		doc = document.Open(abs, raw)
	}
	w.restoreViewState(doc)

	w.layout.AddDocument(doc)
	log.Info().Str("path", abs).Int("bytes", len(raw)).Msg("opened file")
	return doc, nil
}

// Save writes doc to its path.
func (w *Workspace) Save(doc *document.Document) error {
	if doc.IsUntitled() {
		return ErrUntitled
	}
	return w.save(doc, doc.Path())
}

// SaveAs writes doc to path and adopts it as the document's path on
// success. A failed save leaves the document modified.
func (w *Workspace) SaveAs(doc *document.Document, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	return w.save(doc, abs)
}

func (w *Workspace) save(doc *document.Document, path string) error {
	p := w.layout.PaneFor(doc)
	if p != nil && doc.Equal(p.ActiveDocument()) {
		p.SyncFromView()
	}

	content := doc.Authoritative()
	if err := fileio.Write(path, content); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("save failed")
		return err
	}

	// Clearing the view's flag first lets the pane report the change.
	if p != nil && doc.Equal(p.ActiveDocument()) {
		p.Buffer().SetModified(false)
	}
	doc.MarkSaved(path)
	w.rememberViewState(doc)
	log.Info().Str("path", path).Int("bytes", len(content)).Msg("saved file")
	return nil
}

// CloseTab closes the tab at index in p. Modified documents are only
// closed when force is set. The last tab of the last pane is never
// removed; CloseApp tells the caller to exit instead.
func (w *Workspace) CloseTab(p *pane.Pane, index int, force bool) CloseResult {
	doc := p.DocumentAt(index)
	if doc == nil {
		return Unchanged
	}
	if doc.IsModified() && !force {
		return NeedsConfirm
	}
	if !w.layout.IsSplit() && p.Count() == 1 {
		return CloseApp
	}

	if index == p.ActiveIndex() {
		p.SyncFromView()
	}
	w.rememberViewState(doc)
	p.RemoveDocumentAt(index)
	return Closed
}

// RecordQuery adds a find query to the remembered history.
func (w *Workspace) RecordQuery(query string) { w.store.AddQuery(query) }

// RecentQueries returns remembered find queries, most recent first.
func (w *Workspace) RecentQueries() []string {
	return w.store.RecentQueries(constants.RecentQueries)
}

// RestoreSession reopens the files that were open at the last Shutdown.
// Files that can no longer be read are skipped. It returns how many
// files were opened.
func (w *Workspace) RestoreSession() int {
	sess, err := w.store.LastSession()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load last session")
		return 0
	}
	var active *document.Document
	opened := 0
	for i, path := range sess.Paths {
		doc, err := w.Open(path)
		if err != nil {
			continue
		}
		opened++
		if i == sess.Active {
			active = doc
		}
	}
	if active != nil {
		if p := w.layout.PaneFor(active); p != nil {
			p.SetCurrentDocument(active)
		}
	}
	return opened
}

// Shutdown remembers the open files and their view state. Unsaved
// changes are not written.
func (w *Workspace) Shutdown() {
	w.layout.SyncAll()
	var sess store.Session
	for _, doc := range w.layout.Documents() {
		if doc.IsUntitled() {
			continue
		}
		if doc.Equal(w.layout.ActiveDocument()) {
			sess.Active = len(sess.Paths)
		}
		sess.Paths = append(sess.Paths, doc.Path())
		w.rememberViewState(doc)
	}
	if err := w.store.SaveSession(sess); err != nil {
		log.Warn().Err(err).Msg("failed to save session")
	}
	w.store.Flush()
}

func (w *Workspace) find(path string) *document.Document {
	for _, doc := range w.layout.Documents() {
		if doc.Path() == path {
			return doc
		}
	}
	return nil
}

func (w *Workspace) rememberViewState(doc *document.Document) {
	if !w.opts.RememberPositions || doc.IsUntitled() {
		return
	}
	cur, scroll := doc.Cursor(), doc.Scroll()
	w.store.SaveViewState(doc.Path(), store.State{
		Line:    cur.Line,
		Column:  cur.Column,
		ScrollX: scroll.X,
		ScrollY: scroll.Y,
	})
}

func (w *Workspace) restoreViewState(doc *document.Document) {
	if !w.opts.RememberPositions {
		return
	}
	st, ok := w.store.ViewState(doc.Path())
	if !ok {
		return
	}
	doc.SetCursor(document.Cursor{Line: st.Line, Column: st.Column})
	doc.SetScroll(document.Scroll{X: st.ScrollX, Y: st.ScrollY})
}
