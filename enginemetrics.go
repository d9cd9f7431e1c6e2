// Package enginemetrics ingests chess-engine game records and analysis
// documents into a knowledge base and answers natural-language questions
// about engine performance.
//
// Example usage:
//
//	client, err := enginemetrics.New(
//	    enginemetrics.WithDocStore(memdocstore.New()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if _, err := client.Ingest(ctx, enginemetrics.IngestRequest{Content: pgn, Type: enginemetrics.TypePGN}); err != nil {
//	    log.Fatal(err)
//	}
//	result, err := client.Query(ctx, enginemetrics.QueryRequest{Query: "Which engine performs best in blitz?"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Response.Answer)
package enginemetrics

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/enginemetrics/internal/blobstore"
	"github.com/discochess/enginemetrics/internal/codec"
	"github.com/discochess/enginemetrics/internal/docstore"
	"github.com/discochess/enginemetrics/internal/performance"
	"github.com/discochess/enginemetrics/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrClosed indicates the client has been closed.
	ErrClosed = errors.New("enginemetrics: client closed")

	// ErrNoDocStore indicates the knowledge base is not available.
	ErrNoDocStore = errors.New("enginemetrics: database connection not available")

	// ErrNoBlobStore indicates file storage is not available.
	ErrNoBlobStore = errors.New("enginemetrics: storage not available")

	// ErrUnsupportedType indicates an ingestion type other than pgn, json, or markdown.
	ErrUnsupportedType = errors.New("enginemetrics: unsupported data type")

	// ErrInvalidContent indicates content that cannot be decoded as its declared type.
	ErrInvalidContent = errors.New("enginemetrics: invalid content")

	// ErrInvalidFileName indicates an upload name without a supported extension
	// or containing a path.
	ErrInvalidFileName = errors.New("enginemetrics: invalid file name")
)

// Client is the knowledge base and query front end.
// Both collaborators are optional; without a document store the client
// answers queries from general knowledge only.
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	docs      docstore.Store
	blobs     blobstore.Store
	codecs    *codec.Registry
	scanLimit int
	mergeOpts performance.MergeOptions
	now       func() time.Time
	stats     stats.Collector
	logger    *zap.Logger
	closed    atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.scanLimit <= 0 {
		return nil, fmt.Errorf("enginemetrics: scan limit must be positive, got %d", cfg.scanLimit)
	}

	c := &Client{
		docs:      cfg.docs,
		blobs:     cfg.blobs,
		codecs:    cfg.codecs,
		scanLimit: cfg.scanLimit,
		mergeOpts: performance.MergeOptions{CaseSensitiveFilter: cfg.caseSensitiveFilter},
		now:       cfg.now,
		stats:     cfg.stats,
		logger:    cfg.logger.Named("enginemetrics"),
	}

	c.logger.Debug("client initialized",
		zap.Bool("docStore", c.docs != nil),
		zap.Bool("blobStore", c.blobs != nil),
		zap.Int("scanLimit", c.scanLimit),
	)

	return c, nil
}

// HasDocStore reports whether a knowledge base is configured.
func (c *Client) HasDocStore() bool {
	return c.docs != nil
}

// HasBlobStore reports whether file storage is configured.
func (c *Client) HasBlobStore() bool {
	return c.blobs != nil
}

// Close releases all resources associated with the client.
// After Close, the client should not be used.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	var errs []error
	if c.docs != nil {
		if err := c.docs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing document store: %w", err))
		}
	}
	if c.blobs != nil {
		if err := c.blobs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing blob store: %w", err))
		}
	}
	return errors.Join(errs...)
}
