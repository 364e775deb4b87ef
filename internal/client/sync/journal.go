package sync

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nodalhq/nodal-cli/internal/db"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS files (
    path TEXT PRIMARY KEY,
    hash TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_files_hash ON files(hash);
`

type journalRow struct {
	Path string `db:"path"`
	Hash string `db:"hash"`
}

// HashJournal persists the fingerprint mapping of files last known to be in
// sync with the server, backed by an SQLite file inside the project's
// metadata directory. It is rebuilt wholesale after every sync.
type HashJournal struct {
	db     *sqlx.DB
	dbPath string
}

// NewHashJournal creates a journal handle for the database at dbPath.
// Use ":memory:" for tests.
func NewHashJournal(dbPath string) *HashJournal {
	return &HashJournal{dbPath: dbPath}
}

// Open connects to the underlying database and ensures the schema exists.
func (j *HashJournal) Open() error {
	if j.db != nil {
		return errors.New("hash journal already open")
	}

	conn, err := db.NewSqliteDB(db.WithPath(j.dbPath), db.WithMaxOpenConns(1))
	if err != nil {
		return fmt.Errorf("open hash journal: %w", err)
	}

	if _, err := conn.Exec(journalSchema); err != nil {
		conn.Close()
		return fmt.Errorf("init hash journal schema: %w", err)
	}

	j.db = conn
	return nil
}

func (j *HashJournal) Close() error {
	if j.db == nil {
		return errors.New("hash journal not open")
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// Get returns the stored fingerprint for path, or ok=false if unknown.
func (j *HashJournal) Get(path string) (hash string, ok bool, err error) {
	err = j.db.Get(&hash, "SELECT hash FROM files WHERE path = ?", path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("journal get %q: %w", path, err)
	}
	return hash, true, nil
}

// Set inserts or updates the fingerprint for a single path.
func (j *HashJournal) Set(path, hash string) error {
	_, err := j.db.NamedExec(
		`INSERT OR REPLACE INTO files (path, hash) VALUES (:path, :hash)`,
		journalRow{Path: path, Hash: hash},
	)
	if err != nil {
		return fmt.Errorf("journal set %q: %w", path, err)
	}
	return nil
}

// Delete removes a path from the journal.
func (j *HashJournal) Delete(path string) error {
	if _, err := j.db.Exec("DELETE FROM files WHERE path = ?", path); err != nil {
		return fmt.Errorf("journal delete %q: %w", path, err)
	}
	return nil
}

// State returns the full path -> fingerprint mapping.
func (j *HashJournal) State() (map[string]string, error) {
	var rows []journalRow
	if err := j.db.Select(&rows, "SELECT path, hash FROM files"); err != nil {
		return nil, fmt.Errorf("journal state: %w", err)
	}

	state := make(map[string]string, len(rows))
	for _, row := range rows {
		state[row.Path] = row.Hash
	}
	return state, nil
}

// Count returns the number of tracked paths.
func (j *HashJournal) Count() (int, error) {
	var count int
	if err := j.db.Get(&count, "SELECT COUNT(*) FROM files"); err != nil {
		return 0, fmt.Errorf("journal count: %w", err)
	}
	return count, nil
}

// Replace swaps the whole mapping in one transaction. The journal always
// reflects the most recent scan, so partial updates are never kept.
func (j *HashJournal) Replace(state map[string]string) error {
	tx, err := j.db.Beginx()
	if err != nil {
		return fmt.Errorf("journal replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM files"); err != nil {
		return fmt.Errorf("journal replace clear: %w", err)
	}

	for path, hash := range state {
		if _, err := tx.Exec("INSERT INTO files (path, hash) VALUES (?, ?)", path, hash); err != nil {
			return fmt.Errorf("journal replace insert %q: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("journal replace commit: %w", err)
	}
	return nil
}
