package uploads

import (
	"context"
	"database/sql"
	"testing"

	"github.com/arefyev/sealmsg/internal/client/models"
	"github.com/arefyev/sealmsg/internal/common"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:uploads_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS uploads (
  id TEXT PRIMARY KEY,
  raw_path TEXT NOT NULL,
  raw_size INTEGER NOT NULL,
  raw_mime TEXT NOT NULL,
  public INTEGER NOT NULL DEFAULT 0,
  retention TEXT NOT NULL,
  has_meta INTEGER NOT NULL DEFAULT 0,
  meta_mime TEXT NOT NULL DEFAULT '',
  meta_width INTEGER NOT NULL DEFAULT 0,
  meta_height INTEGER NOT NULL DEFAULT 0,
  preview_state TEXT NOT NULL,
  preview_asset_id TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL
);
DELETE FROM uploads;
`)
	require.NoError(t, err)
	return db
}

func sampleUpload(id string) *models.UploadAsset {
	return &models.UploadAsset{
		ID:        id,
		Raw:       models.RawAsset{Path: "/tmp/cat.png", Size: 4096, MimeType: "image/png"},
		Public:    true,
		Retention: models.RetentionEternal,
		Preview:   models.NewPreviewNotReady(),
		Status:    models.UploadNotStarted,
	}
}

func TestSQLiteRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	u := sampleUpload("u1")
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, u, got)
	require.Nil(t, got.Meta)
}

func TestSQLiteRepository_SavePersistsMetaAndPreview(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	u := sampleUpload("u1")
	require.NoError(t, repo.Save(ctx, u))

	u.Meta = &models.AssetMeta{MimeType: "image/png", Width: 800, Height: 600}
	u.Preview = models.NewPreviewNotUploaded("prev-1")
	u.Status = models.UploadInProgress
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, u.Meta, got.Meta)
	require.Equal(t, models.PreviewNotUploaded, got.Preview.State)
	require.Equal(t, "prev-1", got.Preview.AssetID)
	require.Equal(t, models.UploadInProgress, got.Status)
}

func TestSQLiteRepository_GetMissing(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteRepository_Remove(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.Save(ctx, sampleUpload("u1")))
	require.NoError(t, repo.Remove(ctx, "u1"))

	_, err := repo.GetByID(ctx, "u1")
	require.ErrorIs(t, err, common.ErrNotFound)
}
