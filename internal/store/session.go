package store

import "fmt"

// Session is the set of files open when the editor last exited.
type Session struct {
	Paths  []string
	Active int
}

// SaveSession replaces the remembered open files. Untitled documents
// have no path and are skipped by the caller.
func (s *Store) SaveSession(sess Session) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin session save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM open_files"); err != nil {
		return fmt.Errorf("clear open files: %w", err)
	}
	for i, p := range sess.Paths {
		active := 0
		if i == sess.Active {
			active = 1
		}
		if _, err := tx.Exec(
			"INSERT INTO open_files (position, path, active) VALUES (?, ?, ?)",
			i, p, active,
		); err != nil {
			return fmt.Errorf("save open file %s: %w", p, err)
		}
	}
	return tx.Commit()
}

// LastSession returns the remembered open files, in tab order.
func (s *Store) LastSession() (Session, error) {
	if s == nil {
		return Session{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT path, active FROM open_files ORDER BY position")
	if err != nil {
		return Session{}, err
	}
	defer rows.Close()

	var sess Session
	for rows.Next() {
		var p string
		var active int
		if err := rows.Scan(&p, &active); err != nil {
			continue
		}
		if active == 1 {
			sess.Active = len(sess.Paths)
		}
		sess.Paths = append(sess.Paths, p)
	}
	return sess, rows.Err()
}
