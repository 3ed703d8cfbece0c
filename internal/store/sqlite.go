package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultHistoryLimit is the number of kv_history rows kept by a new [SQLite] store.
const DefaultHistoryLimit = 1000

// SQLite implements [Store] over the kv_store table.
//
// Every Set and Remove also appends a row to kv_history, which is trimmed to the newest
// historyLimit rows on each write.
type SQLite struct {
	db           *sql.DB
	historyLimit int
}

// HistoryEntry is a recorded write.
type HistoryEntry struct {
	ID        int       `json:"id"`
	Key       string    `json:"key"`
	Op        string    `json:"op"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewSQLite creates a new [SQLite] store with the given database connection.
//
// Migrations must already be applied (see shared.OpenDatabase).
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, historyLimit: DefaultHistoryLimit}
}

// SetHistoryLimit changes how many history rows are kept. A limit ≤ 0 keeps everything.
func (s *SQLite) SetHistoryLimit(n int) {
	s.historyLimit = n
}

// Get retrieves the value stored under key
func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query key %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key
func (s *SQLite) Set(key, value string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := tx.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	if err := s.record(tx, key, "set"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit key %s: %w", key, err)
	}
	return nil
}

// Remove deletes key
func (s *SQLite) Remove(key string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM kv_store WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows > 0 {
		if err := s.record(tx, key, "remove"); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit removal of %s: %w", key, err)
	}
	return nil
}

// List returns every stored key in sorted order
func (s *SQLite) List() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM kv_store ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return keys, nil
}

// History returns the most recent writes, newest first. A limit ≤ 0 returns everything.
func (s *SQLite) History(limit int) ([]HistoryEntry, error) {
	query := "SELECT id, key, op, created_at FROM kv_history ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Key, &e.Op, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

func (s *SQLite) record(tx *sql.Tx, key, op string) error {
	if _, err := tx.Exec("INSERT INTO kv_history (key, op, created_at) VALUES (?, ?, ?)", key, op, time.Now()); err != nil {
		return fmt.Errorf("failed to record %s of %s: %w", op, key, err)
	}
	if s.historyLimit <= 0 {
		return nil
	}

	query := "DELETE FROM kv_history WHERE id <= (SELECT MAX(id) FROM kv_history) - ?"
	if _, err := tx.Exec(query, s.historyLimit); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}
