package uploads

import (
	"context"

	"github.com/arefyev/sealmsg/internal/client/models"
)

// Repository describes persistence for in-progress UploadAsset records.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// Save inserts a new upload record or updates an existing one by ID.
	Save(ctx context.Context, upload *models.UploadAsset) error

	// GetByID returns an upload record, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.UploadAsset, error)

	// Remove deletes the upload record, typically when the owning message is
	// deleted or the upload is cancelled.
	Remove(ctx context.Context, id string) error
}
