package completion

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dith08/FinBits-sub000/internal/logger"
	"github.com/dith08/FinBits-sub000/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS completions (
	kind         TEXT    NOT NULL,
	item_id      INTEGER NOT NULL,
	completed_at TEXT    NOT NULL,
	PRIMARY KEY (kind, item_id)
);
`

// SQLiteStore keeps the completion table in a SQLite database. It is
// selected when the configured store path ends in .db. Like FileStore it
// keeps the Store contract total: read failures degrade to an empty map
// and write failures are logged, never returned.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Open opens the database and creates the schema if needed.
func (s *SQLiteStore) Open() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open completion database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create completions table: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Get(kind models.Kind) map[int]time.Time {
	out := make(map[int]time.Time)
	if s.db == nil {
		return out
	}

	rows, err := s.db.Query(`SELECT item_id, completed_at FROM completions WHERE kind = ?`, string(kind))
	if err != nil {
		logger.Warn("Failed to read completions, treating as empty", "kind", kind, "error", err)
		return out
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			logger.Warn("Failed to scan completion row", "kind", kind, "error", err)
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			logger.Warn("Dropping malformed completion timestamp", "kind", kind, "id", id, "value", raw)
			continue
		}
		out[id] = ts
	}
	if err := rows.Err(); err != nil {
		logger.Warn("Failed while reading completions", "kind", kind, "error", err)
	}
	return out
}

func (s *SQLiteStore) Set(kind models.Kind, itemID int, completedAt *time.Time) {
	if s.db == nil {
		logger.Error("Completion database is not open, dropping write", "kind", kind, "id", itemID)
		return
	}

	var err error
	if completedAt == nil {
		_, err = s.db.Exec(`DELETE FROM completions WHERE kind = ? AND item_id = ?`, string(kind), itemID)
	} else {
		_, err = s.db.Exec(
			`INSERT INTO completions (kind, item_id, completed_at) VALUES (?, ?, ?)
			 ON CONFLICT (kind, item_id) DO UPDATE SET completed_at = excluded.completed_at`,
			string(kind), itemID, completedAt.Format(time.RFC3339),
		)
	}
	if err != nil {
		logger.Error("Failed to persist completion", "kind", kind, "id", itemID, "error", err)
	}
}
