package conversations

import (
	"context"

	"github.com/arefyev/sealmsg/internal/client/models"
)

// Repository describes persistence for Conversation records.
type Repository interface {
	// Save inserts a new conversation or updates an existing one by ID.
	Save(ctx context.Context, conv *models.Conversation) error

	// GetByID returns a conversation, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
}
