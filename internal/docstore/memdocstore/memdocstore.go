// Package memdocstore provides an in-memory document store for testing and
// single-process deployments.
package memdocstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/discochess/enginemetrics/internal/docstore"
)

// Compile-time check that Store implements docstore.Store.
var _ docstore.Store = (*Store)(nil)

// Store keeps documents in a slice guarded by a mutex.
type Store struct {
	mu     sync.RWMutex
	docs   []*docstore.Document
	closed bool
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Add stores a copy of doc.
func (s *Store) Add(ctx context.Context, doc *docstore.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", docstore.ErrClosed
	}

	stored := *doc
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Payload = append([]byte(nil), doc.Payload...)
	s.docs = append(s.docs, &stored)
	return stored.ID, nil
}

// Find returns copies of matching documents, newest first. Documents with
// equal timestamps are returned most recently added first.
func (s *Store) Find(ctx context.Context, q docstore.Query) ([]*docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, docstore.ErrClosed
	}

	var out []*docstore.Document
	for i := len(s.docs) - 1; i >= 0; i-- {
		d := s.docs[i]
		if d.Collection != q.Collection {
			continue
		}
		if q.DataType != "" && d.DataType != q.DataType {
			continue
		}
		c := *d
		out = append(out, &c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProcessedAt.After(out[j].ProcessedAt)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Len returns the number of stored documents across all collections.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Close marks the store closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
