package committees

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS committee_names (
	congress     TEXT NOT NULL,
	name         TEXT NOT NULL,
	committee_id TEXT NOT NULL,
	fetched_at   TEXT NOT NULL,
	PRIMARY KEY (congress, name)
);
`

// Store persists fetched committee name mappings across runs, keyed by
// congress.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore initializes or connects to the committee cache database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init committee schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Names returns the cached mapping for a congress. A congress with no rows
// yields an empty map and found=false.
func (s *Store) Names(ctx context.Context, congress string) (map[string]string, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, committee_id FROM committee_names WHERE congress = ?`, congress)
	if err != nil {
		return nil, false, fmt.Errorf("query committee names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var name, id string
		if err := rows.Scan(&name, &id); err != nil {
			return nil, false, fmt.Errorf("scan committee name: %w", err)
		}
		names[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate committee names: %w", err)
	}
	return names, len(names) > 0, nil
}

// Replace swaps the cached mapping for a congress in one transaction.
func (s *Store) Replace(ctx context.Context, congress string, names map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin committee replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM committee_names WHERE congress = ?`, congress); err != nil {
		return fmt.Errorf("clear committee names: %w", err)
	}

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	for name, id := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO committee_names (congress, name, committee_id, fetched_at) VALUES (?, ?, ?, ?)`,
			congress, name, id, fetchedAt); err != nil {
			return fmt.Errorf("insert committee name: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit committee replace: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
