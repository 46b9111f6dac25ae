package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xonecas/folio/internal/constants"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, ttl)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestViewState_SaveGet(t *testing.T) {
	s := openTestStore(t, 24*time.Hour)

	if _, ok := s.ViewState("/tmp/a.txt"); ok {
		t.Fatal("expected miss")
	}

	want := State{Line: 12, Column: 4, ScrollX: 2, ScrollY: 8}
	s.SaveViewState("/tmp/a.txt", want)
	s.Flush()

	got, ok := s.ViewState("/tmp/a.txt")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	// Saving again overwrites.
	s.SaveViewState("/tmp/a.txt", State{Line: 1, Column: 1})
	s.Flush()
	if got, _ := s.ViewState("/tmp/a.txt"); got.Line != 1 || got.ScrollY != 0 {
		t.Errorf("overwrite: got %+v", got)
	}
}

func TestViewState_Expiry(t *testing.T) {
	s := openTestStore(t, 1*time.Second)
	s.SaveViewState("/tmp/a.txt", State{Line: 3, Column: 1})
	s.Flush()

	// Backdate the entry.
	s.db.Exec("UPDATE view_state SET created = ? WHERE path = ?",
		time.Now().Add(-2*time.Second).Unix(), "/tmp/a.txt")

	if _, ok := s.ViewState("/tmp/a.txt"); ok {
		t.Fatal("expected stale miss")
	}
}

func TestViewState_UntitledIgnored(t *testing.T) {
	s := openTestStore(t, time.Hour)
	s.SaveViewState("", State{Line: 2, Column: 2})
	s.Flush()
	if _, ok := s.ViewState(""); ok {
		t.Fatal("untitled documents have no remembered state")
	}
}

func TestPurgeStaleOnOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	s.SaveViewState("/old", State{Line: 1, Column: 1})
	s.AddQuery("old query")
	s.Flush()
	old := time.Now().Add(-2 * time.Hour).Unix()
	s.db.Exec("UPDATE view_state SET created = ?", old)
	s.db.Exec("UPDATE query_history SET created = ?", old)
	s.Close()

	s, err = Open(dbPath, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for _, table := range []string{"view_state", "query_history"} {
		var n int
		s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
		if n != 0 {
			t.Errorf("%s: %d rows survived purge", table, n)
		}
	}
}

func TestQueryHistory(t *testing.T) {
	s := openTestStore(t, 24*time.Hour)

	for _, q := range []string{"alpha", "beta", "  ", "gamma", "alpha"} {
		s.AddQuery(q)
	}

	got := s.RecentQueries(10)
	want := []string{"alpha", "gamma", "beta"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := s.RecentQueries(1); len(got) != 1 || got[0] != "alpha" {
		t.Errorf("RecentQueries(1) = %v", got)
	}
	if got := s.RecentQueries(0); got != nil {
		t.Errorf("RecentQueries(0) = %v", got)
	}
}

func TestQueryHistory_Capped(t *testing.T) {
	s := openTestStore(t, 24*time.Hour)
	for i := 0; i < constants.RecentQueries+5; i++ {
		s.AddQuery(fmt.Sprintf("q%d", i))
	}
	var n int
	s.db.QueryRow("SELECT COUNT(*) FROM query_history").Scan(&n)
	if n != constants.RecentQueries {
		t.Errorf("history holds %d rows, want %d", n, constants.RecentQueries)
	}
	got := s.RecentQueries(1)
	if len(got) != 1 || got[0] != fmt.Sprintf("q%d", constants.RecentQueries+4) {
		t.Errorf("most recent = %v", got)
	}
}

func TestSession_SaveLoad(t *testing.T) {
	s := openTestStore(t, time.Hour)

	empty, err := s.LastSession()
	if err != nil || len(empty.Paths) != 0 {
		t.Fatalf("empty session = %+v, %v", empty, err)
	}

	want := Session{Paths: []string{"/a", "/b", "/c"}, Active: 1}
	if err := s.SaveSession(want); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	got, err := s.LastSession()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Paths) != 3 || got.Paths[2] != "/c" || got.Active != 1 {
		t.Errorf("got %+v", got)
	}

	// A second save replaces the first.
	if err := s.SaveSession(Session{Paths: []string{"/z"}}); err != nil {
		t.Fatal(err)
	}
	got, _ = s.LastSession()
	if len(got.Paths) != 1 || got.Paths[0] != "/z" || got.Active != 0 {
		t.Errorf("after replace: %+v", got)
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	s.SaveViewState("/a", State{Line: 1})
	s.AddQuery("x")
	s.Flush()
	if _, ok := s.ViewState("/a"); ok {
		t.Error("nil store should miss")
	}
	if got := s.RecentQueries(5); got != nil {
		t.Errorf("nil store queries = %v", got)
	}
	if err := s.SaveSession(Session{Paths: []string{"/a"}}); err != nil {
		t.Error(err)
	}
	if err := s.Close(); err != nil {
		t.Error(err)
	}
}

func TestMigrateOldViewState(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE view_state (path TEXT PRIMARY KEY, line INTEGER, col INTEGER, created INTEGER)"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	s, err := Open(dbPath, time.Hour)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if !hasColumn(s.db, "view_state", "scroll_y") {
		t.Error("old view_state table was not migrated")
	}
}
