package enginemetricsfx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/discochess/enginemetrics"
	"github.com/discochess/enginemetrics/internal/blobstore/cachedstore"
	"github.com/discochess/enginemetrics/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	return cfg
}

func startClient(t *testing.T, cfg *config.Config) *enginemetrics.Client {
	t.Helper()
	var client *enginemetrics.Client
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Supply(zap.NewNop()),
		Module,
		fx.Populate(&client),
	)
	app.RequireStart()
	t.Cleanup(app.RequireStop)
	return client
}

func TestModule_MemoryDrivers(t *testing.T) {
	client := startClient(t, testConfig(t))

	assert.True(t, client.HasDocStore())
	assert.True(t, client.HasBlobStore())

	_, err := client.Ingest(context.Background(), enginemetrics.IngestRequest{Content: "# Notes", Type: enginemetrics.TypeMarkdown})
	assert.NoError(t, err)
}

func TestModule_NoStores(t *testing.T) {
	cfg := testConfig(t)
	cfg.DocStore.Driver = "none"
	cfg.BlobStore.Driver = "none"

	client := startClient(t, cfg)
	assert.False(t, client.HasDocStore())
	assert.False(t, client.HasBlobStore())
}

func TestModule_UnreachablePostgresDegrades(t *testing.T) {
	cfg := testConfig(t)
	cfg.DocStore.Driver = "postgres"
	cfg.DocStore.URL = "postgres://enginemetrics@127.0.0.1:1/enginemetrics?connect_timeout=1"

	client := startClient(t, cfg)
	assert.False(t, client.HasDocStore())
	assert.True(t, client.HasBlobStore())
}

func TestOpenBlobStore_Cache(t *testing.T) {
	cfg := testConfig(t).BlobStore
	cfg.Driver = "disk"
	cfg.Dir = t.TempDir()
	cfg.CacheSize = 8

	st, err := OpenBlobStore(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer st.Close()
	assert.IsType(t, &cachedstore.Store{}, st)
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	_, err := OpenDocStore(context.Background(), config.DocStoreConfig{Driver: "mongo"})
	assert.Error(t, err)

	_, err = OpenBlobStore(context.Background(), config.BlobStoreConfig{Driver: "ftp"}, nil)
	assert.Error(t, err)
}
