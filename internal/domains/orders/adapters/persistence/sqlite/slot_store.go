// Package sqlite keeps storage slots in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

// DefaultPath is used when no database file is configured.
const DefaultPath = "dentallab.db"

var _ ports.SlotStore = (*SlotStore)(nil)

// SlotStore maps each slot key to one row of the state table.
type SlotStore struct {
	db   *sql.DB
	path string
}

// Open creates the database file and state table when missing.
func Open(ctx context.Context, path string) (*SlotStore, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SlotStore{db: db, path: path}, nil
}

// Path reports the database file in use.
func (s *SlotStore) Path() string { return s.path }

// Get reads the payload stored under key.
func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot: %w", err)
	}
	return payload, nil
}

// Put upserts the payload stored under key.
func (s *SlotStore) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		key, value); err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SlotStore) Close() error {
	return s.db.Close()
}
