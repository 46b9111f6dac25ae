package view

import (
	"testing"
)

func newTestMemory(t *testing.T, text string) *Memory {
	t.Helper()
	m := NewMemory(3)
	m.SetText(text)
	m.ClearUndoHistory()
	m.SetModified(false)
	return m
}

func TestReplaceAndUndo(t *testing.T) {
	m := newTestMemory(t, "hello world")
	m.Replace(6, 11, "there")
	if got := m.Text(); got != "hello there" {
		t.Fatalf("Text = %q", got)
	}
	if !m.IsModified() {
		t.Fatal("expected modified after edit")
	}
	if m.CursorOffset() != 11 {
		t.Fatalf("cursor = %d, want 11", m.CursorOffset())
	}
	if !m.Undo() {
		t.Fatal("Undo returned false")
	}
	if got := m.Text(); got != "hello world" {
		t.Fatalf("after undo Text = %q", got)
	}
	if m.IsModified() {
		t.Fatal("undo back to the save point should clear modified")
	}
	m.Redo()
	if got := m.Text(); got != "hello there" || !m.IsModified() {
		t.Fatalf("after redo Text = %q modified=%v", got, m.IsModified())
	}
}

func TestGroupedEditUndoesAsOneStep(t *testing.T) {
	m := newTestMemory(t, "a a a")
	Grouped(m, func() {
		m.Replace(4, 5, "b")
		m.Replace(2, 3, "b")
		m.Replace(0, 1, "b")
	})
	if got := m.Text(); got != "b b b" {
		t.Fatalf("Text = %q", got)
	}
	m.Undo()
	if got := m.Text(); got != "a a a" {
		t.Fatalf("single undo should revert the group, got %q", got)
	}
	if m.CanUndo() {
		t.Fatal("expected empty undo stack")
	}
}

func TestObserverNotifications(t *testing.T) {
	m := newTestMemory(t, "abc")
	var texts, cursors int
	var mods []bool
	m.SetObserver(Observer{
		OnTextChanged:         func() { texts++ },
		OnModificationChanged: func(v bool) { mods = append(mods, v) },
		OnCursorMoved:         func(int) { cursors++ },
	})

	m.Replace(0, 0, "x")
	m.Replace(0, 0, "y")
	if texts != 2 {
		t.Errorf("text notifications = %d, want 2", texts)
	}
	if len(mods) != 1 || !mods[0] {
		t.Errorf("modification notifications = %v, want [true]", mods)
	}
	if cursors == 0 {
		t.Error("expected cursor notifications")
	}

	m.SetModified(false)
	if len(mods) != 2 || mods[1] {
		t.Errorf("modification notifications = %v, want [true false]", mods)
	}
}

func TestQuietlySuppressesAndRestores(t *testing.T) {
	m := newTestMemory(t, "abc")
	calls := 0
	m.SetObserver(Observer{OnTextChanged: func() { calls++ }})

	func() {
		defer func() { _ = recover() }()
		Quietly(m, func() {
			m.SetText("quiet")
			panic("boom")
		})
	}()
	if calls != 0 {
		t.Fatalf("expected no notifications in quiet mode, got %d", calls)
	}
	if m.Quiet() {
		t.Fatal("quiet mode must be restored after a panic")
	}
	m.SetText("loud")
	if calls != 1 {
		t.Fatalf("expected notification after quiet mode, got %d", calls)
	}
}

func TestClearUndoHistoryKeepsModified(t *testing.T) {
	m := newTestMemory(t, "abc")
	m.Replace(0, 1, "z")
	m.ClearUndoHistory()
	if !m.IsModified() {
		t.Fatal("ClearUndoHistory must not change the modification flag")
	}
	if m.Undo() {
		t.Fatal("expected nothing to undo")
	}
}

func TestLineColumnAndOffsets(t *testing.T) {
	m := newTestMemory(t, "ab\nhéllo\n\nend")
	tests := []struct {
		line, col int
		offset    int
	}{
		{1, 1, 0},
		{1, 3, 2},
		{2, 1, 3},
		{2, 3, 6}, // é is two bytes
		{2, 99, 9},
		{3, 1, 10},
		{4, 4, 14},
		{99, 1, 11},
	}
	for _, tt := range tests {
		if got := m.OffsetAt(tt.line, tt.col); got != tt.offset {
			t.Errorf("OffsetAt(%d, %d) = %d, want %d", tt.line, tt.col, got, tt.offset)
		}
	}
	m.SetCursorOffset(6)
	if line, col := m.CursorLineColumn(); line != 2 || col != 3 {
		t.Errorf("CursorLineColumn = %d:%d, want 2:3", line, col)
	}
}

func TestSelectionOrdering(t *testing.T) {
	m := newTestMemory(t, "abcdef")
	m.SetSelection(5, 1)
	start, end, ok := m.Selection()
	if !ok || start != 1 || end != 5 {
		t.Fatalf("Selection = %d, %d, %v", start, end, ok)
	}
	if m.CursorOffset() != 1 {
		t.Fatalf("cursor = %d, want 1", m.CursorOffset())
	}
	m.ClearSelection()
	if _, _, ok := m.Selection(); ok {
		t.Fatal("expected no selection")
	}
}

func TestEnsureVisibleAndVisibleRange(t *testing.T) {
	m := newTestMemory(t, "l1\nl2\nl3\nl4\nl5\nl6")
	if first, last := m.VisibleRange(); first != 0 || last != 8 {
		t.Fatalf("VisibleRange = %d, %d; want 0, 8", first, last)
	}
	m.EnsureVisible(m.OffsetAt(6, 1))
	if _, y := m.Scroll(); y != 3 {
		t.Fatalf("scrollY = %d, want 3", y)
	}
	if first, last := m.VisibleRange(); first != 9 || last != 17 {
		t.Fatalf("VisibleRange = %d, %d; want 9, 17", first, last)
	}
	m.EnsureVisible(0)
	if _, y := m.Scroll(); y != 0 {
		t.Fatalf("scrollY = %d, want 0", y)
	}
}

func TestRichText(t *testing.T) {
	m := newTestMemory(t, "")
	m.SetRichText("\x1b[1mbold\x1b[0m text")
	if got := m.Text(); got != "bold text" {
		t.Fatalf("plain projection = %q", got)
	}
	if got := m.RichText(); got != "\x1b[1mbold\x1b[0m text" {
		t.Fatalf("RichText = %q", got)
	}
	m.Replace(0, 0, "x")
	if got := m.RichText(); got != "xbold text" {
		t.Fatalf("edited RichText = %q", got)
	}
	if m.RichReads() != 2 {
		t.Fatalf("RichReads = %d", m.RichReads())
	}
}

func TestRevisionCountsChanges(t *testing.T) {
	m := NewMemory(5)
	start := m.Revision()
	m.Replace(0, 0, "abc")
	Quietly(m, func() { m.SetText("xyz") })
	m.Replace(0, 3, "xyz")
	if got := m.Revision() - start; got != 2 {
		t.Fatalf("revision advanced by %d, want 2", got)
	}
	m.Undo()
	if m.Revision()-start != 3 {
		t.Fatal("undo must count as a change")
	}
}
