package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const sqliteFileName = "shelf.db"

const createKVTable = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteKV stores slots as rows of a single kv table.
type SQLiteKV struct {
	db   *sql.DB
	path string
}

// OpenSQLiteKV opens (or creates) the database at path and ensures the schema.
func OpenSQLiteKV(path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	err = db.Ping()
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		_, err = db.Exec(pragma)
		if err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	_, err = db.Exec(createKVTable)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &SQLiteKV{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteKV) Path() string {
	return s.path
}

// Get implements [KV].
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrKeyEmpty
	}

	var value string

	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("read %s: %w", key, err)
	}

	return value, true, nil
}

// Set implements [KV].
func (s *SQLiteKV) Set(key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}

// Close implements [KV].
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
