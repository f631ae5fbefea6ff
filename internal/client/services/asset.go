// Package services holds the two orchestrating services of the sync core:
// AssetService (multi-tier content resolution and uploads) and
// MessageService (per-type message delivery).
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/arefyev/sealmsg/internal/client/models"
	"github.com/arefyev/sealmsg/internal/client/repositories/assets"
	"github.com/arefyev/sealmsg/internal/client/transfer"
	"github.com/arefyev/sealmsg/internal/common"
	"github.com/arefyev/sealmsg/internal/cryptox"
	"github.com/arefyev/sealmsg/internal/logging"
)

// ContentCache is the encrypted local blob store consumed by AssetService.
type ContentCache interface {
	Get(ctx context.Context, key string, secret []byte) (io.ReadCloser, error)
	Put(ctx context.Context, key string, secret []byte, r io.Reader) error
	Remove(ctx context.Context, key string) error
}

// errTierMiss makes a resolution tier fall through to the next one.
var errTierMiss = errors.New("resolution tier miss")

type resolveFn func(ctx context.Context, a *models.Asset) (io.ReadCloser, error)

// AssetService resolves asset content through the local tiers before the
// network, and uploads raw content into resolved assets. Content crossing a
// trust boundary (filesystem, network) is always digest-verified before it
// reaches a caller or the cache.
type AssetService struct {
	assets   assets.Repository
	cache    ContentCache
	transfer transfer.Transfer
	log      logging.Logger
}

// NewAssetService wires the resolution path.
func NewAssetService(repo assets.Repository, cache ContentCache, tr transfer.Transfer, log logging.Logger) *AssetService {
	if log == nil {
		log = logging.Nop()
	}
	return &AssetService{assets: repo, cache: cache, transfer: tr, log: log}
}

// LoadContent returns a verified stream of the asset's content.
//
// Resolution order: an unknown asset is persisted and fetched remotely; an
// asset with a declared local source tries the verified filesystem read then
// remote; everything else tries the encrypted cache then remote. Failure
// modes follow the shared taxonomy: common.ErrNotFoundRemote for content
// permanently gone upstream, common.ErrValidation for digest mismatches, and
// a wrapped TransportError for network failures.
func (s *AssetService) LoadContent(ctx context.Context, a *models.Asset) (io.ReadCloser, error) {
	rec, err := s.assets.GetByID(ctx, a.ID)
	if errors.Is(err, common.ErrNotFound) {
		// nothing known locally: persist first, then go straight to remote
		if err := s.assets.Save(ctx, a); err != nil {
			return nil, fmt.Errorf("persisting asset %s: %w", a.ID, err)
		}
		rec = a
		return s.fetchRemote(ctx, rec)
	}
	if err != nil {
		return nil, fmt.Errorf("loading asset %s: %w", a.ID, err)
	}

	for _, tier := range s.resolutionOrder(rec) {
		rc, err := tier(ctx, rec)
		if errors.Is(err, errTierMiss) {
			continue
		}
		return rc, err
	}
	// the remote tier never reports a miss
	return nil, common.ErrInternal
}

// resolutionOrder returns the fallback chain for the asset as data. The
// cache tier applies only to assets without a declared local source.
func (s *AssetService) resolutionOrder(rec *models.Asset) []resolveFn {
	if rec.LocalPath != "" {
		return []resolveFn{s.verifyLocalFile, s.fetchRemote}
	}
	return []resolveFn{s.readCache, s.fetchRemote}
}

// readCache serves the encrypted cache; any failure is a miss.
func (s *AssetService) readCache(ctx context.Context, a *models.Asset) (io.ReadCloser, error) {
	rc, err := s.cache.Get(ctx, a.ID, a.Secret)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.log.Warn(ctx, "cache read failed, falling back to remote", "asset_id", a.ID, "error", err)
		}
		return nil, errTierMiss
	}
	return rc, nil
}

// verifyLocalFile streams the declared local source while re-hashing it. On
// a digest mismatch or unreadable file the stale pointer is cleared so
// future resolutions skip this tier, and the call falls through to remote.
func (s *AssetService) verifyLocalFile(ctx context.Context, a *models.Asset) (io.ReadCloser, error) {
	ok, err := s.localFileMatches(a)
	if err != nil || !ok {
		s.log.Warn(ctx, "local source stale, clearing pointer", "asset_id", a.ID, "path", a.LocalPath, "error", err)
		if cerr := s.assets.ClearLocalSource(ctx, a.ID); cerr != nil {
			s.log.Error(ctx, "failed to clear stale local source", "asset_id", a.ID, "error", cerr)
		}
		a.LocalPath = ""
		return nil, errTierMiss
	}
	f, err := os.Open(a.LocalPath)
	if err != nil {
		return nil, errTierMiss
	}
	return f, nil
}

func (s *AssetService) localFileMatches(a *models.Asset) (bool, error) {
	f, err := os.Open(a.LocalPath)
	if err != nil {
		return false, err
	}
	defer f.Close()
	digest, err := cryptox.DigestReader(f)
	if err != nil {
		return false, err
	}
	return cryptox.DigestEqual(digest, a.Digest), nil
}

// fetchRemote downloads, verifies, caches and re-reads the content through
// the cache so subsequent reads share one code path.
func (s *AssetService) fetchRemote(ctx context.Context, a *models.Asset) (io.ReadCloser, error) {
	rc, err := s.transfer.LoadContent(ctx, transfer.Descriptor{RemoteID: a.RemoteID, AccessToken: a.AccessToken})
	if err != nil {
		if common.TransportStatusOf(err) == common.StatusNotFound {
			// permanently gone upstream: drop the cached copy too
			if rerr := s.cache.Remove(ctx, a.ID); rerr != nil {
				s.log.Warn(ctx, "failed to evict cache for missing asset", "asset_id", a.ID, "error", rerr)
			}
			return nil, fmt.Errorf("asset %s: %w", a.ID, common.ErrNotFoundRemote)
		}
		return nil, fmt.Errorf("fetching asset %s: %w", a.ID, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading remote asset %s: %w", a.ID, err)
	}
	if !cryptox.DigestEqual(cryptox.Digest(content), a.Digest) {
		// never cache or surface content that fails verification
		return nil, fmt.Errorf("remote content for asset %s does not match digest: %w", a.ID, common.ErrValidation)
	}

	if err := s.cache.Put(ctx, a.ID, a.Secret, bytes.NewReader(content)); err != nil {
		// serving the verified bytes beats failing the caller
		s.log.Warn(ctx, "failed to cache remote asset", "asset_id", a.ID, "error", err)
		return io.NopCloser(bytes.NewReader(content)), nil
	}
	return s.cache.Get(ctx, a.ID, a.Secret)
}

// UploadRaw uploads raw content and persists the resolved Asset built from
// the remote identity plus the raw metadata. Nothing is persisted on failure.
func (s *AssetService) UploadRaw(ctx context.Context, raw models.RawAsset, public bool, retention string) (*models.Asset, error) {
	digest, err := digestFile(raw.Path)
	if err != nil {
		return nil, fmt.Errorf("digesting %s: %w", raw.Path, err)
	}
	secret, err := cryptox.NewSecret()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(raw.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", raw.Path, err)
	}
	defer f.Close()

	meta := transfer.Metadata{
		MimeType:  raw.MimeType,
		Size:      raw.Size,
		Public:    public,
		Retention: retention,
		Digest:    digest,
	}
	res, err := s.transfer.Upload(ctx, meta, f)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", raw.Path, err)
	}

	asset := &models.Asset{
		ID:          uuid.NewString(),
		Digest:      digest,
		Secret:      secret,
		MimeType:    raw.MimeType,
		Size:        raw.Size,
		LocalPath:   raw.Path,
		RemoteID:    res.RemoteID,
		AccessToken: res.AccessToken,
	}
	if err := s.assets.Save(ctx, asset); err != nil {
		return nil, fmt.Errorf("persisting uploaded asset: %w", err)
	}
	s.log.Debug(ctx, "asset uploaded", "asset_id", asset.ID, "remote_id", asset.RemoteID, "size", asset.Size)
	return asset, nil
}

func digestFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cryptox.DigestReader(f)
}
