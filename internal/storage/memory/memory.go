package memory

import (
	"context"
	"slices"
	"sync"

	"viagens/internal/storage"
)

// Store is an in-process storage.KV. Values are copied on the way in and out.
type Store struct {
	mu    sync.Mutex
	items map[string][]byte
}

var _ storage.KV = (*Store)(nil)

func New() *Store {
	return &Store{items: make(map[string][]byte)}
}

// NewSeeded returns a store pre-filled with the given values.
func NewSeeded(items map[string][]byte) *Store {
	s := New()
	for k, v := range items {
		s.items[k] = slices.Clone(v)
	}
	return s
}

func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (s *Store) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = slices.Clone(value)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }
