package assets

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

// Save upserts an asset by id.
func (r *SQLiteRepository) Save(ctx context.Context, a *models.Asset) error {
	query := `INSERT INTO assets (id, digest, secret, mime_type, size, local_path, remote_id, access_token)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET digest = excluded.digest,
				secret = excluded.secret,
				mime_type = excluded.mime_type,
				size = excluded.size,
				local_path = excluded.local_path,
				remote_id = excluded.remote_id,
				access_token = excluded.access_token
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Digest, a.Secret, a.MimeType, a.Size, a.LocalPath, a.RemoteID, a.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to upsert asset: %w", err)
	}
	return nil
}

// GetByID returns a single asset record.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Asset, error) {
	query := `SELECT id, digest, secret, mime_type, size, local_path, remote_id, access_token
			FROM assets WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	a := &models.Asset{}
	err := row.Scan(&a.ID, &a.Digest, &a.Secret, &a.MimeType, &a.Size, &a.LocalPath, &a.RemoteID, &a.AccessToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select asset: %w", err)
	}
	return a, nil
}

// ClearLocalSource empties the local_path column for the given asset.
func (r *SQLiteRepository) ClearLocalSource(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE assets SET local_path = '' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to clear local source: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Remove deletes the asset row.
func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}
