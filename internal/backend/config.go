// Package backend picks the key-value store the ledger persists into.
package backend

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"viagens/internal/config"
	"viagens/internal/storage"
)

type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	SQLiteBackend   BackendType = "sqlite"
	RedisBackend    BackendType = "redis"
	PostgresBackend BackendType = "postgres"
)

var types = []BackendType{MemoryBackend, SQLiteBackend, RedisBackend, PostgresBackend}

// Types lists the supported backends, memory first.
func Types() []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func (bt BackendType) String() string { return string(bt) }

func (bt BackendType) IsValid() bool { return slices.Contains(types, bt) }

// Config holds the connection settings of every backend; only the ones for
// Type are read.
type Config struct {
	Type BackendType

	SQLiteDBPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PostgresURL string
}

// CleanupFunc releases a backend's connections.
type CleanupFunc func() error

// BackendResult is an opened store. Cleanup is nil when there is nothing to
// release.
type BackendResult struct {
	Store   storage.KV
	Cleanup CleanupFunc
}

type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// FromAppConfig picks the backend settings out of the application config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}
	t := BackendType(appConfig.StorageBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %q", appConfig.StorageBackend)
	}
	return Config{
		Type:          t,
		SQLiteDBPath:  appConfig.SQLiteDBPath,
		RedisAddr:     appConfig.RedisAddr,
		RedisPassword: appConfig.RedisPassword,
		RedisDB:       appConfig.RedisDB,
		PostgresURL:   appConfig.PostgresURL,
	}, nil
}

func (c Config) Validate() error {
	var missing string
	switch c.Type {
	case MemoryBackend:
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			missing = "SQLite database path"
		}
	case RedisBackend:
		if c.RedisAddr == "" {
			missing = "Redis address"
		}
	case PostgresBackend:
		if c.PostgresURL == "" {
			missing = "Postgres URL"
		}
	default:
		return fmt.Errorf("invalid backend type: %q", c.Type)
	}
	if missing != "" {
		return fmt.Errorf("%s is required for the %s backend", missing, c.Type)
	}
	return nil
}
