// Package store persists the expense collection and theme preference in a
// local key-value table.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// KeyValue is a durable string-to-string store.
type KeyValue interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// SQLite is a KeyValue backed by a single-table SQLite database.
type SQLite struct {
	db *sql.DB
}

// Open opens or creates the database at the given path and applies the schema.
func Open(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get implements KeyValue.
func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, true, nil
}

// Put implements KeyValue.
func (s *SQLite) Put(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, now)
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// Memory is an in-process KeyValue.
type Memory struct {
	data map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements KeyValue.
func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

// Put implements KeyValue.
func (m *Memory) Put(key, value string) error {
	m.data[key] = value
	return nil
}
