package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/arefyev/sealmsg/internal/flagx"
	"github.com/arefyev/sealmsg/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds.
type JsonConfig struct {
	CourierEndpoint  string         `json:"courier_endpoint"`
	DatabasePath     string         `json:"database_path"`
	CacheDir         string         `json:"cache_dir"`
	StorageEndpoint  string         `json:"storage_endpoint"`
	StorageAccessKey string         `json:"storage_access_key"`
	StorageSecretKey string         `json:"storage_secret_key"`
	StorageBucket    string         `json:"storage_bucket"`
	StorageUseSSL    bool           `json:"storage_use_ssl"`
	RedisAddr        string         `json:"redis_addr"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. Missing flag means no JSON is loaded; read or
// unmarshal errors panic (caller may recover). Empty JSON fields do not
// override existing values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.CourierEndpoint != "" {
		cfg.CourierEndpoint = jc.CourierEndpoint
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.CacheDir != "" {
		cfg.CacheDir = jc.CacheDir
	}
	if jc.StorageEndpoint != "" {
		cfg.StorageEndpoint = jc.StorageEndpoint
	}
	if jc.StorageAccessKey != "" {
		cfg.StorageAccessKey = jc.StorageAccessKey
	}
	if jc.StorageSecretKey != "" {
		cfg.StorageSecretKey = jc.StorageSecretKey
	}
	if jc.StorageBucket != "" {
		cfg.StorageBucket = jc.StorageBucket
	}
	if jc.StorageUseSSL {
		cfg.StorageUseSSL = true
	}
	if jc.RedisAddr != "" {
		cfg.RedisAddr = jc.RedisAddr
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
