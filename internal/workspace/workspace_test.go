package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xonecas/folio/internal/document"
	"github.com/xonecas/folio/internal/fileio"
	"github.com/xonecas/folio/internal/pane"
	"github.com/xonecas/folio/internal/split"
	"github.com/xonecas/folio/internal/store"
	"github.com/xonecas/folio/internal/view"
)

func newWorkspace(t *testing.T, st *store.Store) *Workspace {
	t.Helper()
	l := split.New(func() *pane.Pane {
		return pane.New(view.NewMemory(10), pane.Options{WordWrap: true})
	})
	return New(l, st, Options{RememberPositions: true})
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "session.db"), time.Hour)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")
	w := newWorkspace(t, nil)

	doc, err := w.Open(a)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.Content() != "alpha" || doc.Path() != a || doc.IsModified() {
		t.Errorf("doc = %q %q modified=%v", doc.Content(), doc.Path(), doc.IsModified())
	}
	if got := w.Layout().Active().Buffer().Text(); got != "alpha" {
		t.Errorf("view shows %q", got)
	}
}

func TestOpenAlreadyOpenActivates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")
	b := writeFile(t, dir, "b.txt", "beta")
	w := newWorkspace(t, nil)

	docA, _ := w.Open(a)
	if _, err := w.Open(b); err != nil {
		t.Fatal(err)
	}
	again, err := w.Open(a)
	if err != nil {
		t.Fatal(err)
	}
	if again != docA {
		t.Error("reopening returned a different document")
	}
	if n := len(w.Documents()); n != 2 {
		t.Errorf("documents = %d, want 2", n)
	}
	if !w.Layout().ActiveDocument().Equal(docA) {
		t.Error("reopened document is not active")
	}
}

func TestOpenMissingLeavesSessionUntouched(t *testing.T) {
	w := newWorkspace(t, nil)
	_, err := w.Open(filepath.Join(t.TempDir(), "missing.txt"))
	if fileio.KindOf(err) != fileio.NotFound {
		t.Fatalf("err = %v", err)
	}
	if len(w.Documents()) != 0 {
		t.Error("failed open added a document")
	}
}

func TestOpenRich(t *testing.T) {
	raw := "\x1b[1mbold\x1b[0m text"
	path := writeFile(t, t.TempDir(), "styled.ans", raw)
	w := newWorkspace(t, nil)

	doc, err := w.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Content() != "bold text" {
		t.Errorf("plain = %q", doc.Content())
	}
	if rich, ok := doc.RichContent(); !ok || rich != raw {
		t.Errorf("rich = %q, %v", rich, ok)
	}
	if !doc.HasRichFormatting() {
		t.Error("rich intent not set")
	}
}

func TestSave(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "hello")
	w := newWorkspace(t, nil)
	doc, _ := w.Open(path)

	buf := w.Layout().Active().Buffer()
	buf.Replace(5, 5, " world")
	if !doc.IsModified() {
		t.Fatal("edit did not mark the document modified")
	}

	if err := w.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := readFile(t, path); got != "hello world" {
		t.Errorf("file = %q", got)
	}
	if doc.IsModified() || buf.IsModified() {
		t.Error("save did not clear the modified flags")
	}
}

func TestSaveUntitled(t *testing.T) {
	w := newWorkspace(t, nil)
	doc := w.NewDocument()
	if err := w.Save(doc); !errors.Is(err, ErrUntitled) {
		t.Fatalf("err = %v", err)
	}

	path := filepath.Join(t.TempDir(), "sub", "new.txt")
	w.Layout().Active().Buffer().Replace(0, 0, "fresh")
	if err := w.SaveAs(doc, path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if doc.Path() != path || doc.IsUntitled() || doc.Name() != "new.txt" {
		t.Errorf("path = %q name = %q", doc.Path(), doc.Name())
	}
	if got := readFile(t, path); got != "fresh" {
		t.Errorf("file = %q", got)
	}
}

func TestSaveAsFailureKeepsModified(t *testing.T) {
	dir := t.TempDir()
	blocker := writeFile(t, dir, "file", "x")
	w := newWorkspace(t, nil)
	doc := w.NewDocument()
	w.Layout().Active().Buffer().Replace(0, 0, "draft")

	err := w.SaveAs(doc, filepath.Join(blocker, "child.txt"))
	if fileio.KindOf(err) != fileio.WriteError {
		t.Fatalf("err = %v", err)
	}
	if !doc.IsModified() || !doc.IsUntitled() || doc.Content() != "draft" {
		t.Errorf("failed save changed the document: modified=%v path=%q content=%q",
			doc.IsModified(), doc.Path(), doc.Content())
	}
}

func TestSaveRichWritesPayload(t *testing.T) {
	raw := "\x1b[31mred\x1b[0m"
	path := writeFile(t, t.TempDir(), "c.ans", raw)
	w := newWorkspace(t, nil)
	doc, _ := w.Open(path)
	doc.SetModified(true)

	if err := w.Save(doc); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != raw {
		t.Errorf("file = %q, want %q", got, raw)
	}
}

func TestSaveAsPlainPathKeepsRichPayload(t *testing.T) {
	raw := "\x1b[31mred\x1b[0m"
	dir := t.TempDir()
	w := newWorkspace(t, nil)
	doc, _ := w.Open(writeFile(t, dir, "c.ans", raw))

	out := filepath.Join(dir, "c.txt")
	if err := w.SaveAs(doc, out); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, out); got != raw {
		t.Errorf("file = %q, want %q", got, raw)
	}
}

func TestCloseTab(t *testing.T) {
	dir := t.TempDir()
	w := newWorkspace(t, nil)
	docA, _ := w.Open(writeFile(t, dir, "a.txt", "a"))
	if _, err := w.Open(writeFile(t, dir, "b.txt", "b")); err != nil {
		t.Fatal(err)
	}
	p := w.Layout().Active()

	if got := w.CloseTab(p, 5, false); got != Unchanged {
		t.Errorf("out of range = %v", got)
	}

	docA.SetModified(true)
	if got := w.CloseTab(p, 0, false); got != NeedsConfirm {
		t.Errorf("modified close = %v", got)
	}
	if p.Count() != 2 {
		t.Fatal("NeedsConfirm removed the tab")
	}
	if got := w.CloseTab(p, 0, true); got != Closed {
		t.Errorf("forced close = %v", got)
	}
	if p.Count() != 1 {
		t.Fatalf("count = %d", p.Count())
	}

	if got := w.CloseTab(p, 0, false); got != CloseApp {
		t.Errorf("last tab = %v", got)
	}
	if p.Count() != 1 {
		t.Error("CloseApp removed the last tab")
	}
}

func TestCloseTabInSplitRemovesPane(t *testing.T) {
	dir := t.TempDir()
	w := newWorkspace(t, nil)
	w.Open(writeFile(t, dir, "a.txt", "a"))
	docB, _ := w.Open(writeFile(t, dir, "b.txt", "b"))
	if !w.Layout().CreateSplit(docB, split.EdgeRight) {
		t.Fatal("split failed")
	}
	right := w.Layout().Pane(1)

	if got := w.CloseTab(right, 0, false); got != Closed {
		t.Fatalf("close = %v", got)
	}
	if w.Layout().IsSplit() {
		t.Error("emptied pane was kept")
	}
}

func TestViewStateRemembered(t *testing.T) {
	dir := t.TempDir()
	st := openStore(t)
	w := newWorkspace(t, st)
	a := writeFile(t, dir, "a.txt", "line1\nline2\nline3")
	w.Open(a)
	w.Layout().Active().Buffer().SetCursorOffset(8) // line 2, column 3
	w.Open(writeFile(t, dir, "b.txt", "b"))

	if got := w.CloseTab(w.Layout().Active(), 0, false); got != Closed {
		t.Fatalf("close = %v", got)
	}
	st.Flush()

	doc, err := w.Open(a)
	if err != nil {
		t.Fatal(err)
	}
	if cur := doc.Cursor(); cur.Line != 2 || cur.Column != 3 {
		t.Errorf("restored cursor = %+v", cur)
	}
	if line, col := w.Layout().Active().Buffer().CursorLineColumn(); line != 2 || col != 3 {
		t.Errorf("view cursor = %d:%d", line, col)
	}
}

func TestSessionRestore(t *testing.T) {
	dir := t.TempDir()
	st := openStore(t)
	a := writeFile(t, dir, "a.txt", "a")
	b := writeFile(t, dir, "b.txt", "b")

	w := newWorkspace(t, st)
	w.Open(a)
	w.Open(b)
	w.Open(a)
	w.NewDocument()
	w.Open(a)
	w.Shutdown()

	w2 := newWorkspace(t, st)
	if n := w2.RestoreSession(); n != 2 {
		t.Fatalf("restored %d files", n)
	}
	docs := w2.Documents()
	if docs[0].Path() != a || docs[1].Path() != b {
		t.Errorf("order = %q, %q", docs[0].Path(), docs[1].Path())
	}
	if got := w2.Layout().ActiveDocument().Path(); got != a {
		t.Errorf("active = %q", got)
	}
}

func TestSearchAcrossDocuments(t *testing.T) {
	dir := t.TempDir()
	w := newWorkspace(t, nil)
	docA, _ := w.Open(writeFile(t, dir, "a.txt", "foo bar"))
	docB, _ := w.Open(writeFile(t, dir, "b.txt", "Foo foo"))

	results := w.Search().Search("foo", false)
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	replaced, files, ok := w.Search().ReplaceAll("baz", func(n, d int) bool { return n == 3 && d == 2 })
	if !ok || replaced != 3 || files != 2 {
		t.Fatalf("ReplaceAll = %d, %d, %v", replaced, files, ok)
	}
	if docA.Content() != "baz bar" || !docA.IsModified() {
		t.Errorf("background doc = %q modified=%v", docA.Content(), docA.IsModified())
	}
	if got := w.Layout().Active().Buffer().Text(); got != "baz baz" || !docB.IsModified() {
		t.Errorf("active view = %q", got)
	}
}

func TestQueryHistory(t *testing.T) {
	w := newWorkspace(t, openStore(t))
	w.RecordQuery("one")
	w.RecordQuery("two")
	got := w.RecentQueries()
	if len(got) != 2 || got[0] != "two" {
		t.Errorf("recent = %v", got)
	}

	// Without a store nothing is remembered.
	if got := newWorkspace(t, nil).RecentQueries(); got != nil {
		t.Errorf("nil store recent = %v", got)
	}
}

func TestLocateMissingIsNil(t *testing.T) {
	w := newWorkspace(t, nil)
	if owner := w.locate(document.New("x")); owner != nil {
		t.Errorf("locate returned %T for an unknown document", owner)
	}
}
