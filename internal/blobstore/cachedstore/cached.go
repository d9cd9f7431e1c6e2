package cachedstore

import (
	"context"

	"github.com/discochess/enginemetrics/internal/blobstore"
)

// Compile-time check that Store implements blobstore.Store.
var _ blobstore.Store = (*Store)(nil)

// Store wraps another Store, caching object reads. Listings are never cached.
type Store struct {
	underlying blobstore.Store
	backend    Backend
}

// New creates a new cached store wrapping the given store.
func New(underlying blobstore.Store, backend Backend) *Store {
	return &Store{
		underlying: underlying,
		backend:    backend,
	}
}

// List delegates to the underlying store.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	return s.underlying.List(ctx, prefix)
}

// Read returns an object, checking the cache first.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.backend.Get(name); ok {
		return data, nil
	}

	data, err := s.underlying.Read(ctx, name)
	if err != nil {
		return nil, err
	}

	s.backend.Set(name, data)
	return data, nil
}

// Write writes through to the underlying store and refreshes the cache
// entry on success.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := s.underlying.Write(ctx, name, data); err != nil {
		return err
	}
	s.backend.Set(name, data)
	return nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.underlying.Close()
}

// Stats returns cache statistics.
func (s *Store) Stats() Stats {
	return s.backend.Stats()
}
