package messages

import (
	"context"
	"time"

	"github.com/arefyev/sealmsg/internal/client/models"
)

// Repository describes persistence for Message records.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// Save inserts a new message or updates an existing one by ID.
	Save(ctx context.Context, msg *models.Message) error

	// GetByID returns a message, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Message, error)

	// ListByConversation returns up to limit messages of a conversation,
	// newest first.
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]*models.Message, error)

	// DeleteByID removes the message record.
	DeleteByID(ctx context.Context, id string) error

	// HasUnreadSince reports whether the conversation holds an incoming,
	// unseen message with a remote time strictly after since. Used to guard
	// the monotonic lastRead advance after a local send.
	HasUnreadSince(ctx context.Context, conversationID string, since time.Time) (bool, error)
}
