// Package redis stores state in Redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"viagens/internal/storage"
)

type Store struct {
	client *goredis.Client
}

var _ storage.KV = (*Store)(nil)

type Options struct {
	Addr     string
	Password string
	DB       int
}

func New(opts Options) *Store {
	return NewWithClient(goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}))
}

func NewWithClient(client *goredis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, nil
}

// Save stores the value without expiry.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
