// Package docstore defines the append-only document store that backs the
// knowledge base.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Collections.
const (
	KnowledgeBase = "knowledge_base"
	Queries       = "queries"
)

// Data types of stored documents.
const (
	PGNAnalysis      = "pgn_analysis"
	JSONAnalysis     = "json_analysis"
	MarkdownAnalysis = "markdown_analysis"
	QueryLog         = "query_log"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("docstore: store is closed")

// Document is one stored unit. Documents are never updated or deleted.
type Document struct {
	ID          string          `json:"id"`
	Collection  string          `json:"collection"`
	SourceFile  string          `json:"source_file"`
	DataType    string          `json:"data_type"`
	Payload     json.RawMessage `json:"payload"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// Query selects documents from one collection.
type Query struct {
	Collection string
	// DataType restricts results to one data type when non-empty.
	DataType string
	// Limit caps the number of results. Zero means no limit.
	Limit int
}

// Store is an append-only document store.
type Store interface {
	// Add stores doc and returns its ID. An empty ID is assigned by the store.
	Add(ctx context.Context, doc *Document) (string, error)

	// Find returns matching documents, newest ProcessedAt first.
	Find(ctx context.Context, q Query) ([]*Document, error)

	// Close releases any resources held by the store.
	Close() error
}
