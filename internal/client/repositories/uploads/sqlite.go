package uploads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arefyev/sealmsg/internal/client/models"
	"github.com/arefyev/sealmsg/internal/common"
	"github.com/arefyev/sealmsg/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts an upload record by id.
func (r *SQLiteRepository) Save(ctx context.Context, u *models.UploadAsset) error {
	var metaMime string
	var metaWidth, metaHeight, hasMeta int
	if u.Meta != nil {
		metaMime, metaWidth, metaHeight, hasMeta = u.Meta.MimeType, u.Meta.Width, u.Meta.Height, 1
	}

	query := `INSERT INTO uploads (id, raw_path, raw_size, raw_mime, public, retention,
				has_meta, meta_mime, meta_width, meta_height,
				preview_state, preview_asset_id, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET raw_path = excluded.raw_path,
				raw_size = excluded.raw_size,
				raw_mime = excluded.raw_mime,
				public = excluded.public,
				retention = excluded.retention,
				has_meta = excluded.has_meta,
				meta_mime = excluded.meta_mime,
				meta_width = excluded.meta_width,
				meta_height = excluded.meta_height,
				preview_state = excluded.preview_state,
				preview_asset_id = excluded.preview_asset_id,
				status = excluded.status
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Raw.Path, u.Raw.Size, u.Raw.MimeType, boolToInt(u.Public), u.Retention,
		hasMeta, metaMime, metaWidth, metaHeight,
		string(u.Preview.State), u.Preview.AssetID, string(u.Status))
	if err != nil {
		return fmt.Errorf("failed to upsert upload: %w", err)
	}
	return nil
}

// GetByID returns a single upload record.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.UploadAsset, error) {
	query := `SELECT id, raw_path, raw_size, raw_mime, public, retention,
			has_meta, meta_mime, meta_width, meta_height,
			preview_state, preview_asset_id, status
			FROM uploads WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	u := &models.UploadAsset{}
	var public, hasMeta, metaWidth, metaHeight int
	var metaMime, previewState, status string
	err := row.Scan(&u.ID, &u.Raw.Path, &u.Raw.Size, &u.Raw.MimeType, &public, &u.Retention,
		&hasMeta, &metaMime, &metaWidth, &metaHeight,
		&previewState, &u.Preview.AssetID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select upload: %w", err)
	}

	u.Public = public != 0
	if hasMeta != 0 {
		u.Meta = &models.AssetMeta{MimeType: metaMime, Width: metaWidth, Height: metaHeight}
	}
	u.Preview.State = models.PreviewState(previewState)
	u.Status = models.UploadAssetStatus(status)
	return u, nil
}

// Remove deletes the upload row.
func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
