// Package store provides SQLite-backed memory of editor sessions: cursor
// positions per file, find history and the last set of open files.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS view_state (
	path      TEXT PRIMARY KEY,
	line      INTEGER NOT NULL,
	col       INTEGER NOT NULL,
	scroll_x  INTEGER NOT NULL DEFAULT 0,
	scroll_y  INTEGER NOT NULL DEFAULT 0,
	created   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS query_history (
	query    TEXT PRIMARY KEY,
	created  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS open_files (
	position  INTEGER PRIMARY KEY,
	path      TEXT NOT NULL,
	active    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_view_state_created ON view_state(created);
CREATE INDEX IF NOT EXISTS idx_query_history_created ON query_history(created);
`

// Store is a SQLite-backed session store.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	ttl time.Duration

	saveCh chan saveReq
	done   chan struct{}
}

// saveReq is a queued view-state write, or a flush marker when flush is set.
type saveReq struct {
	path  string
	state State
	flush chan struct{}
}

// Open creates or opens a store database at the given path.
// ttl controls how long remembered positions and queries are kept.
func Open(dbPath string, ttl time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	// Databases written before scroll offsets were tracked hold only
	// positions, which are cheap to lose.
	if tableExists(db, "view_state") && !hasColumn(db, "view_state", "scroll_y") {
		db.Exec("DROP TABLE view_state") //nolint:errcheck // best-effort migration
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{
		db:     db,
		ttl:    ttl,
		saveCh: make(chan saveReq, 64),
		done:   make(chan struct{}),
	}
	s.purgeStale()
	go s.saveLoop()
	return s, nil
}

// Close drains pending writes and closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	close(s.saveCh)
	<-s.done
	return s.db.Close()
}

// Flush blocks until all queued async saves have been written to the DB.
// Times out after 5 seconds to avoid deadlocking the caller.
func (s *Store) Flush() {
	if s == nil {
		return
	}
	done := make(chan struct{})
	select {
	case s.saveCh <- saveReq{flush: done}:
		<-done
	case <-time.After(5 * time.Second):
		log.Warn().Msg("flush timed out waiting to enqueue")
	}
}

// saveLoop drains saveCh and writes view states to the DB.
func (s *Store) saveLoop() {
	defer close(s.done)
	for req := range s.saveCh {
		if req.flush != nil {
			close(req.flush)
			continue
		}
		s.writeViewState(req.path, req.state)
	}
}

func (s *Store) cutoff() int64 {
	return time.Now().Add(-s.ttl).Unix()
}

// purgeStale removes entries older than the TTL.
func (s *Store) purgeStale() {
	cutoff := s.cutoff()
	for _, table := range []string{"view_state", "query_history"} {
		res, err := s.db.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE created <= ?", table), //nolint:gosec // table name is hardcoded
			cutoff,
		)
		if err != nil {
			log.Warn().Err(err).Str("table", table).Msg("failed to purge stale entries")
			continue
		}
		if n, _ := res.RowsAffected(); n > 0 {
			log.Info().Int64("deleted", n).Str("table", table).Msg("purged stale session entries")
		}
	}
}

func tableExists(db *sql.DB, table string) bool {
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
	return err == nil
}

// hasColumn checks if a table has a specific column.
func hasColumn(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table)) //nolint:gosec // table name is hardcoded by caller
	if err != nil {
		return false
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}
