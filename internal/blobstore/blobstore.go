// Package blobstore defines the storage backend interface for uploaded files.
package blobstore

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when an object does not exist in the store.
var ErrNotFound = errors.New("blobstore: object not found")

// Store defines the interface for storage backends.
// Names are slash-separated and relative to the store's root; backends map
// them onto their own key or path format.
type Store interface {
	// List returns the names of all objects whose name starts with prefix,
	// in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Read returns the content of the named object.
	Read(ctx context.Context, name string) ([]byte, error)

	// Write creates or replaces the named object.
	Write(ctx context.Context, name string, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// NormalizePrefix returns prefix without surrounding slashes and with a
// single trailing slash, or "" for an empty prefix. Backends use it for their
// root namespace.
func NormalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

// ContentType guesses the MIME type of an object from its name.
func ContentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	case strings.HasSuffix(name, ".md"):
		return "text/markdown"
	case strings.HasSuffix(name, ".pgn"):
		return "application/x-chess-pgn"
	case strings.HasSuffix(name, ".zst"):
		return "application/zstd"
	case strings.HasSuffix(name, ".gz"):
		return "application/gzip"
	default:
		return "application/octet-stream"
	}
}
