package backend

import (
	"context"
	"fmt"

	"viagens/internal/log"
	"viagens/internal/storage"
	"viagens/internal/storage/memory"
	"viagens/internal/storage/postgres"
	"viagens/internal/storage/redis"
)

// DefaultFactory opens stores by BackendType.
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Default()
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentBackend)}
}

// CreateBackend validates config and opens the matching store.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		f.logger.WarnContext(ctx, "Using in-memory ledger storage, changes are lost on restart")
		return &BackendResult{Store: memory.New()}, nil
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case RedisBackend:
		return f.createRedisBackend(ctx, config)
	case PostgresBackend:
		return f.createPostgresBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	f.logger.InfoContext(ctx, "Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"schema_version", repo.SchemaVersion())
	return &BackendResult{Store: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createRedisBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store := redis.New(redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to reach Redis at %s: %w", config.RedisAddr, err)
	}
	f.logger.InfoContext(ctx, "Initialized Redis backend", "addr", config.RedisAddr, "db", config.RedisDB)
	return &BackendResult{Store: store, Cleanup: store.Close}, nil
}

func (f *DefaultFactory) createPostgresBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, err := postgres.Connect(ctx, config.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Postgres repository: %w", err)
	}
	f.logger.InfoContext(ctx, "Initialized Postgres backend")
	return &BackendResult{Store: store, Cleanup: store.Close}, nil
}
