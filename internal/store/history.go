package store

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/folio/internal/constants"
)

// AddQuery records a find query as the most recent. Blank queries are
// ignored and the history is capped. No-op on nil receiver.
func (s *Store) AddQuery(query string) {
	if s == nil || strings.TrimSpace(query) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// REPLACE assigns a fresh rowid, so rowid order is recency order.
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO query_history (query, created) VALUES (?, ?)",
		query, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("failed to record query")
		return
	}
	_, err = s.db.Exec(
		`DELETE FROM query_history WHERE rowid NOT IN
		 (SELECT rowid FROM query_history ORDER BY rowid DESC LIMIT ?)`,
		constants.RecentQueries,
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to trim query history")
	}
}

// RecentQueries returns up to n queries, most recent first.
func (s *Store) RecentQueries(n int) []string {
	if s == nil || n <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT query FROM query_history WHERE created > ? ORDER BY rowid DESC LIMIT ?",
		s.cutoff(), n,
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load query history")
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			continue
		}
		out = append(out, q)
	}
	return out
}
