package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Load when no value is stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// KV is a durable key-value store holding opaque serialized values.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Pinger is implemented by stores that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
