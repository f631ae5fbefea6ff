// Package cache implements the encrypted local blob store for asset content.
//
// Blobs are keyed by asset identifier and sealed on disk with
// XChaCha20-Poly1305 under the asset's own secret, or under the cache master
// key for assets without one. A missing blob is reported as
// common.ErrNotFound, which callers treat as a cache miss.
package cache

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arefyev/sealmsg/internal/common"
	"github.com/arefyev/sealmsg/internal/cryptox"
	"github.com/arefyev/sealmsg/internal/filex"
)

// Cache is an encrypted blob store rooted at a single directory.
type Cache struct {
	dir       string
	masterKey []byte
}

// New returns a Cache writing sealed blobs under dir. masterKey seals blobs
// whose assets carry no per-asset secret; it must be cryptox.KeySize bytes.
func New(dir string, masterKey []byte) (*Cache, error) {
	if len(masterKey) != cryptox.KeySize {
		return nil, fmt.Errorf("master key must be %d bytes, got %d", cryptox.KeySize, len(masterKey))
	}
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &Cache{dir: abs, masterKey: masterKey}, nil
}

// Get opens and decrypts the blob for key. Returns common.ErrNotFound when
// no blob exists.
func (c *Cache) Get(ctx context.Context, key string, secret []byte) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sealed, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached blob: %w", err)
	}
	plaintext, err := cryptox.Open(c.keyFor(secret), sealed)
	if err != nil {
		return nil, fmt.Errorf("unsealing cached blob %s: %w", key, err)
	}
	return io.NopCloser(bytes.NewReader(plaintext)), nil
}

// Put seals the content read from r and stores it under key. The write goes
// through a temp file and rename so a crash never leaves a partial blob
// observable.
func (c *Cache) Put(ctx context.Context, key string, secret []byte, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}
	sealed, err := cryptox.Seal(c.keyFor(secret), plaintext)
	if err != nil {
		return fmt.Errorf("sealing content: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, "blob-*")
	if err != nil {
		return fmt.Errorf("creating temp blob: %w", err)
	}
	if _, err := tmp.Write(sealed); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("storing blob: %w", err)
	}
	return nil
}

// Remove deletes the blob for key. Removing a missing blob is not an error.
func (c *Cache) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing cached blob: %w", err)
	}
	return nil
}

func (c *Cache) keyFor(secret []byte) []byte {
	if len(secret) == cryptox.KeySize {
		return secret
	}
	return c.masterKey
}

// path maps a key to a filename. Keys are hashed so arbitrary identifiers
// never escape the cache directory.
func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, hex.EncodeToString(cryptox.Digest([]byte(key))))
}
