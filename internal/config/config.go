// Package config loads service configuration from a YAML file, the
// environment, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ENGINEMETRICS_SERVER_PORT.
const EnvPrefix = "ENGINEMETRICS"

// Config is the full service configuration.
type Config struct {
	Server      ServerConfig
	Logging     LoggingConfig
	DocStore    DocStoreConfig
	BlobStore   BlobStoreConfig
	Metrics     MetricsConfig
	Performance PerformanceConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// Addr returns host:port for listening.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LoggingConfig struct {
	Level  string
	Format string
}

// DocStoreConfig selects the knowledge-base document store.
type DocStoreConfig struct {
	// Driver is memory, postgres, or none.
	Driver         string
	URL            string
	MaxConnections int32
	ScanLimit      int
}

// BlobStoreConfig selects the file store.
type BlobStoreConfig struct {
	// Driver is memory, disk, gcs, s3, or none.
	Driver    string
	Bucket    string
	Prefix    string
	Dir       string
	Region    string
	Endpoint  string
	CacheSize int
}

type MetricsConfig struct {
	Enabled bool
}

type PerformanceConfig struct {
	CaseSensitiveFilter bool
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("enginemetrics")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/enginemetrics")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// Load reads configuration into a Config. If file is non-empty it is read
// and must exist; otherwise the search paths are tried and a missing file is
// not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks driver names and numeric bounds.
func (c *Config) Validate() error {
	switch c.DocStore.Driver {
	case "memory", "postgres", "none":
	default:
		return fmt.Errorf("config: unknown docstore.driver %q", c.DocStore.Driver)
	}
	if c.DocStore.Driver == "postgres" && c.DocStore.URL == "" {
		return errors.New("config: docstore.url is required for the postgres driver")
	}

	switch c.BlobStore.Driver {
	case "memory", "disk", "gcs", "s3", "none":
	default:
		return fmt.Errorf("config: unknown blobstore.driver %q", c.BlobStore.Driver)
	}
	if c.BlobStore.Driver == "disk" && c.BlobStore.Dir == "" {
		return errors.New("config: blobstore.dir is required for the disk driver")
	}

	if c.DocStore.ScanLimit <= 0 {
		return fmt.Errorf("config: docstore.scanLimit must be positive, got %d", c.DocStore.ScanLimit)
	}
	if c.BlobStore.CacheSize < 0 {
		return fmt.Errorf("config: blobstore.cacheSize must not be negative, got %d", c.BlobStore.CacheSize)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5002)
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.bodyLimit", 50*1024*1024)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("docstore.driver", "memory")
	v.SetDefault("docstore.url", "")
	v.SetDefault("docstore.maxConnections", 25)
	v.SetDefault("docstore.scanLimit", 50)

	v.SetDefault("blobstore.driver", "memory")
	v.SetDefault("blobstore.bucket", "chess-engine-metrics-agent.firebasestorage.app")
	v.SetDefault("blobstore.prefix", "")
	v.SetDefault("blobstore.dir", "")
	v.SetDefault("blobstore.region", "")
	v.SetDefault("blobstore.endpoint", "")
	v.SetDefault("blobstore.cacheSize", 0)

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("performance.caseSensitiveFilter", false)
}
