package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	account_type TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	phone_number TEXT NOT NULL DEFAULT '',
	is_profile_complete INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS food_listings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	restaurant_id INTEGER NOT NULL REFERENCES users (id),
	food_item TEXT NOT NULL,
	quantity TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Available',
	fresh_until TIMESTAMP NOT NULL,
	claimed_by_id INTEGER REFERENCES users (id),
	timestamp TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_listings_restaurant ON food_listings (restaurant_id, timestamp);
CREATE TABLE IF NOT EXISTS chat_exchanges (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	user_text TEXT NOT NULL,
	assistant TEXT NOT NULL,
	category TEXT NOT NULL,
	ts TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_exchanges_session_ts ON chat_exchanges (session_id, ts);
`

// Open opens (creating if needed) the sqlite database at path and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("database path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// one writer at a time; sqlite serialises them anyway
	db.SetMaxOpenConns(1)

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}
