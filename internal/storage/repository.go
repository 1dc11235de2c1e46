// Package storage defines the key-value port the ledger persists through
// and its SQLite implementation.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"viagens/internal/log"
)

const (
	loadSQL = `SELECT value FROM kv_store WHERE key = ?`
	saveSQL = `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
)

// SQLiteRepository keeps every key as one row of kv_store.
type SQLiteRepository struct {
	db      *sql.DB
	version uint
	logger  *log.Logger
}

var (
	_ KV     = (*SQLiteRepository)(nil)
	_ Pinger = (*SQLiteRepository)(nil)
)

// NewSQLiteRepository migrates the database at dbPath, creating the file and
// its directory when missing, and opens it.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	version, err := MigrateSQLite(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one writer at a time avoids SQLITE_BUSY on concurrent saves
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		version: version,
		logger:  log.Default().WithComponent(log.ComponentStorage),
	}, nil
}

// SchemaVersion is the kv_store migration version the database was left on.
func (r *SQLiteRepository) SchemaVersion() uint { return r.version }

func (r *SQLiteRepository) Close() error { return r.db.Close() }

func (r *SQLiteRepository) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *SQLiteRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	switch err := r.db.QueryRowContext(ctx, loadSQL, key).Scan(&value); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return []byte(value), nil
}

// Save replaces the whole value stored under key.
func (r *SQLiteRepository) Save(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, saveSQL, key, string(value)); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	r.logger.DebugContext(ctx, "State saved", log.FieldLedgerKey, key, "bytes", len(value))
	return nil
}
