package enginemetrics

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/enginemetrics/internal/blobstore"
	"github.com/discochess/enginemetrics/internal/blobstore/diskstore"
	"github.com/discochess/enginemetrics/internal/codec"
	"github.com/discochess/enginemetrics/internal/codec/gzipcodec"
	"github.com/discochess/enginemetrics/internal/codec/noopcodec"
	"github.com/discochess/enginemetrics/internal/codec/zstdcodec"
	"github.com/discochess/enginemetrics/internal/docstore"
	"github.com/discochess/enginemetrics/internal/stats"
)

// DefaultScanLimit is the number of newest documents read per aggregation.
const DefaultScanLimit = 50

// Option configures a Client.
type Option interface {
	apply(*options)
}

// options holds the client configuration.
type options struct {
	docs                docstore.Store
	blobs               blobstore.Store
	codecs              *codec.Registry
	scanLimit           int
	caseSensitiveFilter bool
	now                 func() time.Time
	stats               stats.Collector
	logger              *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		codecs:    codec.NewRegistry(noopcodec.New(), zstdcodec.New(), gzipcodec.New()),
		scanLimit: DefaultScanLimit,
		now:       time.Now,
		stats:     stats.NewNoop(),
		logger:    zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithDocStore sets the knowledge-base document store.
func WithDocStore(s docstore.Store) Option {
	return optionFunc(func(o *options) {
		o.docs = s
	})
}

// WithBlobStore sets the file store used by the storage operations.
func WithBlobStore(s blobstore.Store) Option {
	return optionFunc(func(o *options) {
		o.blobs = s
	})
}

// WithDataDir uses a directory on disk as the file store.
func WithDataDir(dir string) (Option, error) {
	s, err := diskstore.New(dir)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}
	return WithBlobStore(s), nil
}

// WithScanLimit sets how many of the newest documents an aggregation or
// query reads. Default is 50.
func WithScanLimit(n int) Option {
	return optionFunc(func(o *options) {
		o.scanLimit = n
	})
}

// WithCaseSensitiveFilter makes the engine filter of PerformanceSummary
// compare names exactly. By default names are compared case-insensitively,
// although stored engine names are always kept case-sensitive.
func WithCaseSensitiveFilter(enabled bool) Option {
	return optionFunc(func(o *options) {
		o.caseSensitiveFilter = enabled
	})
}

// WithClock sets the time source for timestamps.
// If not set, time.Now is used.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(o *options) {
		o.now = now
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}
