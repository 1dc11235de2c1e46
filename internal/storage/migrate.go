package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// schemaTable records the applied kv_store migrations.
const schemaTable = "viagens_schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateSQLite brings the database at dbPath to the latest kv_store schema
// and returns the version it ended on. It opens its own connection because
// closing the migrator closes the database handle it was given.
func MigrateSQLite(dbPath string) (uint, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("read embedded migrations: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("open %s for migration: %w", dbPath, err)
	}
	defer conn.Close()

	drv, err := sqlite.WithInstance(conn, &sqlite.Config{MigrationsTable: schemaTable})
	if err != nil {
		return 0, fmt.Errorf("sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return 0, fmt.Errorf("migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("apply kv_store schema: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("kv_store schema version %d is dirty", version)
	}
	return version, nil
}
