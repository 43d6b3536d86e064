package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"

	"github.com/XiaoConstantine/adapt-go/pkg/errors"
	_ "github.com/mattn/go-sqlite3"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SQLite is a Store backed by a SQLite table, for operators who want run
// history to survive restarts. Values are serialized as JSON. The path may be
// ":memory:" for an in-memory database.
type SQLite[T any] struct {
	db       *sql.DB
	mu       sync.RWMutex
	table    string
	capacity int

	ownsDB bool
}

// NewSQLite opens (or creates) the database at path and ensures the table
// exists. Capacity 0 means unbounded.
func NewSQLite[T any](path, table string, capacity int) (*SQLite[T], error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StoreFailed, "failed to open SQLite database"),
			errors.Fields{"path": path},
		)
	}

	s, err := NewSQLiteWithDB[T](db, table, capacity)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.ownsDB = true
	return s, nil
}

// NewSQLiteWithDB builds a store over an existing database handle, so several
// stores can share one file.
func NewSQLiteWithDB[T any](db *sql.DB, table string, capacity int) (*SQLite[T], error) {
	if !validTableName.MatchString(table) {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "invalid table name"),
			errors.Fields{"table": table},
		)
	}

	s := &SQLite[T]{db: db, table: table, capacity: capacity}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, errors.Wrap(err, errors.StoreFailed, "failed to enable WAL mode")
	}

	query := fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS %s (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );`, table)

	if _, err := db.Exec(query); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StoreFailed, "failed to initialize table"),
			errors.Fields{"table": table},
		)
	}
	return s, nil
}

func (s *SQLite[T]) Put(key string, value T) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.InvalidInput, "failed to marshal value to JSON"),
			errors.Fields{"key": key, "value_type": fmt.Sprintf("%T", value)},
		)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := fmt.Sprintf(`
    INSERT INTO %s (key, value) VALUES (?, ?)
    ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, s.table)

	if _, err := s.db.Exec(query, key, string(jsonValue)); err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StoreFailed, "failed to upsert value"),
			errors.Fields{"key": key, "table": s.table},
		)
	}

	return s.pruneLocked()
}

// pruneLocked deletes the oldest rows beyond capacity.
func (s *SQLite[T]) pruneLocked() error {
	if s.capacity <= 0 {
		return nil
	}

	query := fmt.Sprintf(`
    DELETE FROM %s WHERE key IN (
        SELECT key FROM %s ORDER BY rowid ASC
        LIMIT (SELECT MAX(COUNT(*) - ?, 0) FROM %s)
    );`, s.table, s.table, s.table)

	if _, err := s.db.Exec(query, s.capacity); err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StoreFailed, "failed to prune table"),
			errors.Fields{"table": s.table},
		)
	}
	return nil
}

func (s *SQLite[T]) Get(key string) (T, bool) {
	var zero T

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := fmt.Sprintf("SELECT value FROM %s WHERE key = ?;", s.table)

	var raw string
	if err := s.db.QueryRow(query, key).Scan(&raw); err != nil {
		return zero, false
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return zero, false
	}
	return value, true
}

func (s *SQLite[T]) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := fmt.Sprintf("DELETE FROM %s WHERE key = ?;", s.table)
	if _, err := s.db.Exec(query, key); err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StoreFailed, "failed to delete value"),
			errors.Fields{"key": key, "table": s.table},
		)
	}
	return nil
}

func (s *SQLite[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s;", s.table)

	var n int
	if err := s.db.QueryRow(query).Scan(&n); err != nil {
		return 0
	}
	return n
}

func (s *SQLite[T]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := fmt.Sprintf("SELECT key FROM %s ORDER BY rowid ASC;", s.table)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return keys
		}
		keys = append(keys, key)
	}
	return keys
}

func (s *SQLite[T]) Values() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := fmt.Sprintf("SELECT value FROM %s ORDER BY rowid ASC;", s.table)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var values []T
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return values
		}
		var value T
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			continue
		}
		values = append(values, value)
	}
	return values
}

func (s *SQLite[T]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := fmt.Sprintf("DELETE FROM %s;", s.table)
	if _, err := s.db.Exec(query); err != nil {
		return errors.Wrap(err, errors.StoreFailed, "failed to clear table")
	}
	return nil
}

// Close releases the database handle if this store opened it.
func (s *SQLite[T]) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}
