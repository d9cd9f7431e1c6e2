// Package memoryenginemetricsfx provides an fx module for an engine metrics
// client backed by in-memory stores.
// Useful for testing.
package memoryenginemetricsfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/enginemetrics"
	"github.com/discochess/enginemetrics/internal/blobstore/memstore"
	"github.com/discochess/enginemetrics/internal/docstore/memdocstore"
	"github.com/discochess/enginemetrics/internal/stats"
	"github.com/discochess/enginemetrics/internal/stats/logger"
)

// Module provides an in-memory engine metrics client for testing.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("memoryenginemetrics",
	fx.Provide(
		newStatsCollector,
		memdocstore.New,
		memstore.New,
		newClient,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("enginemetrics.stats"))
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	DocStore  *memdocstore.Store
	BlobStore *memstore.Store
	Lifecycle fx.Lifecycle
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *enginemetrics.Client
}

func newClient(p Params) (Result, error) {
	client, err := enginemetrics.New(
		enginemetrics.WithDocStore(p.DocStore),
		enginemetrics.WithBlobStore(p.BlobStore),
		enginemetrics.WithStats(p.Collector),
		enginemetrics.WithLogger(p.Logger),
	)
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
