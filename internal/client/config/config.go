package config

import "time"

// Config holds runtime settings for the sealmsg client.
type Config struct {
	// CourierEndpoint is the base URL of the encrypted message transport.
	CourierEndpoint string
	// DatabasePath locates the local SQLite database file.
	DatabasePath string
	// CacheDir holds the encrypted content cache.
	CacheDir string

	// Object storage settings for asset content.
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	// RedisAddr backs the background enrichment queue.
	RedisAddr string

	// RequestTimeout bounds individual courier and storage calls.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.CourierEndpoint = "http://127.0.0.1:8080"
	c.DatabasePath = "sealmsg.db"
	c.CacheDir = "cache"
	c.StorageEndpoint = "127.0.0.1:9000"
	c.StorageBucket = "sealmsg-assets"
	c.RedisAddr = "127.0.0.1:6379"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
