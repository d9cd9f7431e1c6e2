// Package pgdocstore provides a PostgreSQL-backed document store.
package pgdocstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/discochess/enginemetrics/internal/docstore"
)

// Compile-time check that Store implements docstore.Store.
var _ docstore.Store = (*Store)(nil)

// Pool defaults, applied when the corresponding Config field is zero.
const (
	DefaultMaxConnections  = 25
	DefaultMaxConnLifetime = time.Hour
	DefaultMaxConnIdleTime = 30 * time.Minute
)

// schema stores payload as JSON, which keeps the inserted text. Engine
// tables rely on object key order, which JSONB does not preserve.
const schema = `
CREATE TABLE IF NOT EXISTS knowledge_documents (
	id           TEXT PRIMARY KEY,
	collection   TEXT NOT NULL,
	source_file  TEXT NOT NULL,
	data_type    TEXT NOT NULL,
	payload      JSON NOT NULL,
	processed_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS knowledge_documents_lookup
	ON knowledge_documents (collection, data_type, processed_at DESC);
ALTER TABLE knowledge_documents ALTER COLUMN payload TYPE JSON USING payload::json;
`

// Config holds connection settings.
type Config struct {
	URL             string
	MaxConnections  int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Store reads and writes documents through a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL, verifies the connection, and returns a store.
// Call EnsureSchema before first use on a fresh database.
func New(ctx context.Context, cfg Config) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	if poolConfig.MaxConns == 0 {
		poolConfig.MaxConns = DefaultMaxConnections
	}
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	if poolConfig.MaxConnLifetime == 0 {
		poolConfig.MaxConnLifetime = DefaultMaxConnLifetime
	}
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	if poolConfig.MaxConnIdleTime == 0 {
		poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// EnsureSchema creates the documents table and its index if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Add inserts doc.
func (s *Store) Add(ctx context.Context, doc *docstore.Document) (string, error) {
	id := doc.ID
	if id == "" {
		id = uuid.NewString()
	}
	payload := doc.Payload
	if len(payload) == 0 {
		payload = []byte("null")
	}

	const sql = `
		INSERT INTO knowledge_documents (id, collection, source_file, data_type, payload, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.pool.Exec(ctx, sql,
		id, doc.Collection, doc.SourceFile, doc.DataType, string(payload), doc.ProcessedAt.UTC())
	if err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}
	return id, nil
}

// Find selects matching documents ordered by processed_at descending.
func (s *Store) Find(ctx context.Context, q docstore.Query) ([]*docstore.Document, error) {
	sql, args := findSQL(q)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*docstore.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func findSQL(q docstore.Query) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT id, collection, source_file, data_type, payload, processed_at
		FROM knowledge_documents
		WHERE collection = $1`)
	args := []any{q.Collection}

	if q.DataType != "" {
		args = append(args, q.DataType)
		fmt.Fprintf(&b, " AND data_type = $%d", len(args))
	}
	b.WriteString(" ORDER BY processed_at DESC")
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}

func scanDocument(row pgx.Row) (*docstore.Document, error) {
	var (
		d       docstore.Document
		payload []byte
	)
	if err := row.Scan(&d.ID, &d.Collection, &d.SourceFile, &d.DataType, &payload, &d.ProcessedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	d.Payload = payload
	return &d, nil
}
