// Package enginemetricsfx provides an fx module for an engine metrics client
// built from configuration.
package enginemetricsfx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/discochess/enginemetrics"
	"github.com/discochess/enginemetrics/internal/blobstore"
	"github.com/discochess/enginemetrics/internal/blobstore/cachedstore"
	"github.com/discochess/enginemetrics/internal/blobstore/cachedstore/cachestrategy/lru"
	"github.com/discochess/enginemetrics/internal/blobstore/cachedstore/memory"
	"github.com/discochess/enginemetrics/internal/blobstore/diskstore"
	"github.com/discochess/enginemetrics/internal/blobstore/gcsstore"
	"github.com/discochess/enginemetrics/internal/blobstore/memstore"
	"github.com/discochess/enginemetrics/internal/blobstore/s3store"
	"github.com/discochess/enginemetrics/internal/config"
	"github.com/discochess/enginemetrics/internal/docstore"
	"github.com/discochess/enginemetrics/internal/docstore/memdocstore"
	"github.com/discochess/enginemetrics/internal/docstore/pgdocstore"
	"github.com/discochess/enginemetrics/internal/stats"
	"github.com/discochess/enginemetrics/internal/stats/logger"
	statsprom "github.com/discochess/enginemetrics/internal/stats/prometheus"
)

// connectTimeout bounds store construction at startup.
const connectTimeout = 10 * time.Second

// Module provides an engine metrics client and the Prometheus registry its
// metrics are recorded in.
// Requires a *config.Config and a *zap.Logger to be provided.
var Module = fx.Module("enginemetrics",
	fx.Provide(
		newRegistry,
		newStatsCollector,
		newClient,
	),
)

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newStatsCollector(cfg *config.Config, reg *prometheus.Registry, log *zap.Logger) stats.Collector {
	if cfg.Metrics.Enabled {
		return statsprom.New(reg)
	}
	return logger.NewAtLevel(log.Named("enginemetrics.stats"), zapcore.DebugLevel)
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Config    *config.Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *enginemetrics.Client
}

func newClient(p Params) (Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	opts := []enginemetrics.Option{
		enginemetrics.WithScanLimit(p.Config.DocStore.ScanLimit),
		enginemetrics.WithCaseSensitiveFilter(p.Config.Performance.CaseSensitiveFilter),
		enginemetrics.WithStats(p.Collector),
		enginemetrics.WithLogger(p.Logger),
	}

	// A store that cannot be opened leaves the client in degraded mode
	// rather than failing startup.
	docs, err := OpenDocStore(ctx, p.Config.DocStore)
	switch {
	case err != nil:
		p.Logger.Warn("knowledge base unavailable", zap.String("driver", p.Config.DocStore.Driver), zap.Error(err))
	case docs != nil:
		opts = append(opts, enginemetrics.WithDocStore(docs))
	}

	blobs, err := OpenBlobStore(ctx, p.Config.BlobStore, p.Collector)
	switch {
	case err != nil:
		p.Logger.Warn("file storage unavailable", zap.String("driver", p.Config.BlobStore.Driver), zap.Error(err))
	case blobs != nil:
		opts = append(opts, enginemetrics.WithBlobStore(blobs))
	}

	client, err := enginemetrics.New(opts...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return Result{Client: client}, nil
}

// OpenDocStore opens the document store named by cfg.Driver. The "none"
// driver returns a nil store and no error.
func OpenDocStore(ctx context.Context, cfg config.DocStoreConfig) (docstore.Store, error) {
	switch cfg.Driver {
	case "none":
		return nil, nil
	case "memory":
		return memdocstore.New(), nil
	case "postgres":
		s, err := pgdocstore.New(ctx, pgdocstore.Config{
			URL:            cfg.URL,
			MaxConnections: cfg.MaxConnections,
		})
		if err != nil {
			return nil, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, errors.Join(err, s.Close())
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown docstore driver %q", cfg.Driver)
	}
}

// OpenBlobStore opens the blob store named by cfg.Driver, wrapped in a read
// cache when cfg.CacheSize is positive. The "none" driver returns a nil
// store and no error.
func OpenBlobStore(ctx context.Context, cfg config.BlobStoreConfig, collector stats.Collector) (blobstore.Store, error) {
	var (
		st  blobstore.Store
		err error
	)
	switch cfg.Driver {
	case "none":
		return nil, nil
	case "memory":
		st = memstore.New()
	case "disk":
		st, err = diskstore.New(cfg.Dir)
	case "gcs":
		st, err = gcsstore.New(ctx, cfg.Bucket, gcsstore.WithPrefix(cfg.Prefix))
	case "s3":
		st, err = s3store.New(ctx, cfg.Bucket,
			s3store.WithPrefix(cfg.Prefix),
			s3store.WithRegion(cfg.Region),
			s3store.WithEndpoint(cfg.Endpoint),
		)
	default:
		return nil, fmt.Errorf("unknown blobstore driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheSize <= 0 {
		return st, nil
	}
	strategy, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, errors.Join(err, st.Close())
	}
	return cachedstore.New(st, memory.New(strategy, collector)), nil
}
