package find

import (
	"fmt"

	"github.com/xonecas/folio/internal/document"
	"github.com/xonecas/folio/internal/search"
	"github.com/xonecas/folio/internal/view"
)

// Owner is the pane holding a document, as seen by a multi-document search.
type Owner interface {
	// SyncFromView flushes the view's state into the active document.
	SyncFromView()
	ActiveDocument() *document.Document
	Buffer() view.Buffer
	// RefreshDocument updates any presentation of doc after its stored
	// content changed behind the view's back.
	RefreshDocument(doc *document.Document)
}

// Locator returns the owner of doc, or nil.
type Locator func(doc *document.Document) Owner

// Multi searches and replaces across every open document.
type Multi struct {
	documents func() []*document.Document
	locate    Locator
	opts      Options

	query         string
	caseSensitive bool
	results       []search.DocumentMatches
}

// NewMulti returns a search over the documents listed by documents.
func NewMulti(documents func() []*document.Document, locate Locator, opts Options) *Multi {
	return &Multi{documents: documents, locate: locate, opts: opts.withDefaults()}
}

// Query returns the last searched text.
func (m *Multi) Query() string { return m.query }

// CaseSensitive reports the case handling of the last search.
func (m *Multi) CaseSensitive() bool { return m.caseSensitive }

// Results returns the matches of the last search.
func (m *Multi) Results() []search.DocumentMatches { return m.results }

// Search flushes every pane's view into its document, then searches each
// document. Only documents with at least one match are returned.
func (m *Multi) Search(query string, caseSensitive bool) []search.DocumentMatches {
	m.query = query
	m.caseSensitive = caseSensitive
	m.results = nil
	if query == "" {
		return nil
	}

	docs := m.documents()
	m.sync(docs)
	for _, doc := range docs {
		matches := search.FindAll(doc.Content(), query, caseSensitive)
		if len(matches) > 0 {
			m.results = append(m.results, search.DocumentMatches{Document: doc, Matches: matches})
		}
	}
	return m.results
}

// Summary counts matches and documents in the last search.
func (m *Multi) Summary() (matches, documents int) {
	for _, dm := range m.results {
		matches += dm.Count()
	}
	return matches, len(m.results)
}

// SummaryText describes the last search for a status line.
func (m *Multi) SummaryText() string {
	if m.query == "" {
		return "Enter search text"
	}
	n, docs := m.Summary()
	if n == 0 {
		return "No matches found"
	}
	return fmt.Sprintf("Found %d match(es) in %d file(s)", n, docs)
}

// ConfirmFunc is asked before documents are mutated.
type ConfirmFunc func(replacements, documents int) bool

// ConfirmMessage is the question shown before a multi-document replace.
func ConfirmMessage(replacements, documents int) string {
	return fmt.Sprintf("Replace %d occurrence(s) in %d file(s)?", replacements, documents)
}

// ReplaceAll replaces every match of the last query with replacement. The
// search runs again first so the counts reflect current text; nothing is
// changed unless confirm approves. Documents active in a view are edited
// through it as one undo step; the others are rewritten in storage and
// marked modified.
func (m *Multi) ReplaceAll(replacement string, confirm ConfirmFunc) (replaced, documents int, ok bool) {
	results := m.Search(m.query, m.caseSensitive)
	total, docs := m.Summary()
	if total == 0 {
		return 0, 0, false
	}
	if confirm != nil && !confirm(total, docs) {
		return 0, 0, false
	}

	for _, dm := range results {
		doc := dm.Document
		owner := m.locate(doc)
		if owner != nil && doc.Equal(owner.ActiveDocument()) {
			ranges := make([]search.Range, len(dm.Matches))
			for i, match := range dm.Matches {
				ranges[i] = match.Range()
			}
			replaced += replaceInBuffer(owner.Buffer(), ranges, m.query, replacement, m.caseSensitive, m.opts.ReplaceThreshold)
			doc.SetModified(true)
			owner.SyncFromView()
			continue
		}

		text, n := search.ReplaceAll(doc.Content(), m.query, replacement, m.caseSensitive)
		if n == 0 {
			continue
		}
		doc.SetContent(text)
		doc.ClearRichContent()
		doc.SetModified(true)
		replaced += n
		if owner != nil {
			owner.RefreshDocument(doc)
		}
	}

	m.Search(m.query, m.caseSensitive)
	return replaced, docs, true
}

func (m *Multi) sync(docs []*document.Document) {
	seen := make(map[Owner]bool)
	for _, doc := range docs {
		owner := m.locate(doc)
		if owner == nil || seen[owner] {
			continue
		}
		seen[owner] = true
		owner.SyncFromView()
	}
}
