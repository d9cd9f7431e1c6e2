// Package gcsstore implements a Google Cloud Storage backend. Firebase
// Storage buckets are GCS buckets and work unchanged.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/discochess/enginemetrics/internal/blobstore"
)

// Compile-time check that Store implements blobstore.Store.
var _ blobstore.Store = (*Store)(nil)

// DefaultBucket is the bucket used when none is configured.
const DefaultBucket = "chess-engine-metrics-agent.firebasestorage.app"

// Store is a Google Cloud Storage backend.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
}

// New creates a new GCS store using application default credentials.
// The bucket must already exist.
func New(ctx context.Context, bucketName string, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client: client,
		bucket: client.Bucket(bucketName),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix roots all object names under prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = blobstore.NormalizePrefix(prefix)
	}
}

// List iterates the objects under prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: s.key(prefix)})

	names := make([]string, 0)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		names = append(names, s.name(attrs.Name))
	}
	return names, nil
}

// Read downloads the named object.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	reader, err := s.bucket.Object(s.key(name)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, blobstore.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Write uploads data as the named object.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	w := s.bucket.Object(s.key(name)).NewWriter(ctx)
	w.ContentType = blobstore.ContentType(name)

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", name, err)
	}
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.client.Close()
}

// key returns the full object key for a name.
func (s *Store) key(name string) string {
	return s.prefix + name
}

// name strips the store prefix from an object key.
func (s *Store) name(key string) string {
	return strings.TrimPrefix(key, s.prefix)
}
