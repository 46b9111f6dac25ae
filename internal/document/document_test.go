package document

import "testing"

func TestEqualityByID(t *testing.T) {
	a := New("same")
	b := New("same")
	if a.Equal(b) {
		t.Fatal("documents with identical text must be distinct")
	}
	if !a.Equal(a) {
		t.Fatal("document must equal itself")
	}
	if a.ID() == b.ID() {
		t.Fatal("expected unique ids")
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", "Untitled"},
		{"/tmp/notes.txt", "notes.txt"},
		{"rel/dir/main.go", "main.go"},
	}
	for _, tt := range tests {
		d := Open(tt.path, "")
		if got := d.Name(); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRichContentIsAuthoritative(t *testing.T) {
	d := New("plain")
	if _, ok := d.RichContent(); ok {
		t.Fatal("new document should have no rich payload")
	}
	if d.AuthoritativeLen() != len("plain") {
		t.Fatalf("AuthoritativeLen = %d", d.AuthoritativeLen())
	}

	d.SetRichContent("\x1b[1mplain\x1b[0m")
	if got := d.Authoritative(); got != "\x1b[1mplain\x1b[0m" {
		t.Fatalf("Authoritative = %q", got)
	}

	d.ClearRichContent()
	if got := d.Authoritative(); got != "plain" {
		t.Fatalf("after clear, Authoritative = %q", got)
	}
}

func TestOpenRichSetsIntent(t *testing.T) {
	d := OpenRich("a.ans", "x", "\x1b[31mx\x1b[0m")
	if !d.HasRichFormatting() {
		t.Fatal("expected rich formatting intent")
	}
	d.ClearRichContent()
	if !d.HasRichFormatting() {
		t.Fatal("rich formatting intent must be sticky")
	}
}

func TestMarkSaved(t *testing.T) {
	d := New("x")
	d.SetModified(true)
	d.MarkSaved("")
	if d.IsModified() || !d.IsUntitled() {
		t.Fatal("MarkSaved(\"\") should clear modified and keep the path")
	}
	d.SetModified(true)
	d.MarkSaved("/tmp/x.txt")
	if d.IsModified() || d.Path() != "/tmp/x.txt" {
		t.Fatalf("MarkSaved: modified=%v path=%q", d.IsModified(), d.Path())
	}
}

func TestSetCursorClamps(t *testing.T) {
	d := New("")
	d.SetCursor(Cursor{Line: 0, Column: -3})
	c := d.Cursor()
	if c.Line != 1 || c.Column != 1 {
		t.Fatalf("cursor = %+v, want 1:1", c)
	}
}
