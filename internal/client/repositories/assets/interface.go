package assets

import (
	"context"

	"github.com/arefyev/sealmsg/internal/client/models"
)

// Repository describes persistence for resolved Asset records.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// Save inserts a new asset or updates an existing one by ID.
	Save(ctx context.Context, asset *models.Asset) error

	// GetByID returns an asset by its identifier, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Asset, error)

	// ClearLocalSource drops the local-filesystem pointer of an asset so
	// future resolutions skip the filesystem tier.
	ClearLocalSource(ctx context.Context, id string) error

	// Remove deletes the asset record.
	Remove(ctx context.Context, id string) error
}
