package metadata

import (
	"context"
)

// Well-known metadata keys.
const (
	// KeyDeviceRegistration holds the device-client registration record.
	// Its absence means the device must (re)register before syncing.
	KeyDeviceRegistration = "device_registration"

	// KeySyncWatermark holds the last successful sync position.
	KeySyncWatermark = "sync_watermark"

	// KeyCacheSalt holds the argon2 salt for the local cache master key.
	KeyCacheSalt = "cache_salt"
)

// Repository is a small key/value store for client-side state that does not
// fit a dedicated table. Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
