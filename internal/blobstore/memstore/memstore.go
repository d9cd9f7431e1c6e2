// Package memstore provides an in-memory blob store for testing.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/discochess/enginemetrics/internal/blobstore"
)

// Compile-time check that Store implements blobstore.Store.
var _ blobstore.Store = (*Store)(nil)

// Store is an in-memory blob store.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		objects: make(map[string][]byte),
	}
}

// Put sets the content of an object (for test setup).
func (s *Store) Put(name string, data []byte) {
	_ = s.Write(context.Background(), name, data)
}

// List returns the sorted names under prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0)
	for name := range s.objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Read returns a copy of the named object.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[name]
	if !ok {
		return nil, blobstore.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data so caller mutations do not affect the store.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = append([]byte(nil), data...)
	return nil
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
