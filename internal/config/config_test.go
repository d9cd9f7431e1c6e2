package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5002", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 50*1024*1024, cfg.Server.BodyLimit)
	assert.Equal(t, "memory", cfg.DocStore.Driver)
	assert.Equal(t, 50, cfg.DocStore.ScanLimit)
	assert.Equal(t, "memory", cfg.BlobStore.Driver)
	assert.Equal(t, "chess-engine-metrics-agent.firebasestorage.app", cfg.BlobStore.Bucket)
	assert.Equal(t, 0, cfg.BlobStore.CacheSize)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Performance.CaseSensitiveFilter)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enginemetrics.yaml")
	yaml := `
server:
  port: 8080
  readTimeout: 5s
docstore:
  driver: postgres
  url: postgres://localhost/metrics
  scanLimit: 10
blobstore:
  driver: disk
  dir: /var/lib/enginemetrics
  cacheSize: 64
performance:
  caseSensitiveFilter: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "postgres", cfg.DocStore.Driver)
	assert.Equal(t, "postgres://localhost/metrics", cfg.DocStore.URL)
	assert.Equal(t, 10, cfg.DocStore.ScanLimit)
	assert.Equal(t, "/var/lib/enginemetrics", cfg.BlobStore.Dir)
	assert.Equal(t, 64, cfg.BlobStore.CacheSize)
	assert.True(t, cfg.Performance.CaseSensitiveFilter)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENGINEMETRICS_SERVER_PORT", "9000")
	t.Setenv("ENGINEMETRICS_BLOBSTORE_DRIVER", "none")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "none", cfg.BlobStore.Driver)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DocStore:  DocStoreConfig{Driver: "memory", ScanLimit: 50},
			BlobStore: BlobStoreConfig{Driver: "memory"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown docstore", func(c *Config) { c.DocStore.Driver = "mongo" }, true},
		{"postgres without url", func(c *Config) { c.DocStore.Driver = "postgres" }, true},
		{"unknown blobstore", func(c *Config) { c.BlobStore.Driver = "ftp" }, true},
		{"disk without dir", func(c *Config) { c.BlobStore.Driver = "disk" }, true},
		{"zero scan limit", func(c *Config) { c.DocStore.ScanLimit = 0 }, true},
		{"negative cache", func(c *Config) { c.BlobStore.CacheSize = -1 }, true},
		{"no stores", func(c *Config) { c.DocStore.Driver = "none"; c.BlobStore.Driver = "none" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
