package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSlot stores slots in the kv_slots table of a local SQLite file.
type SQLiteSlot struct {
	db *sql.DB
}

func NewSQLiteSlot(path string) (*SQLiteSlot, error) {
	if dir := filepath.Dir(path); dir != "" {
		err := os.MkdirAll(dir, 0o755)
		if err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer keeps saves in arrival order.
	db.SetMaxOpenConns(1)

	const createTableQuery = `
CREATE TABLE IF NOT EXISTS kv_slots (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at INTEGER NOT NULL
)
`
	_, err = db.Exec(createTableQuery)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create kv_slots table: %w", err)
	}

	return &SQLiteSlot{db: db}, nil
}

func (s *SQLiteSlot) Get(ctx context.Context, key string) ([]byte, error) {
	const selectSlotQuery = `SELECT value FROM kv_slots WHERE key = ?`

	var value []byte
	err := s.db.QueryRowContext(ctx, selectSlotQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to select slot %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteSlot) Set(ctx context.Context, key string, value []byte) error {
	const upsertSlotQuery = `
INSERT INTO kv_slots (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`
	_, err := s.db.ExecContext(ctx, upsertSlotQuery, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert slot %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteSlot) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_slots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
