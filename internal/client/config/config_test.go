package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.CourierEndpoint)
	assert.Equal(t, "sealmsg.db", c.DatabasePath)
	assert.Equal(t, "cache", c.CacheDir)
	assert.Equal(t, "127.0.0.1:9000", c.StorageEndpoint)
	assert.Equal(t, "sealmsg-assets", c.StorageBucket)
	assert.Equal(t, "127.0.0.1:6379", c.RedisAddr)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.CourierEndpoint)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
