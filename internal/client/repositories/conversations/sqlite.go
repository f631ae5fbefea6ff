package conversations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

// Save upserts a conversation by id.
func (r *SQLiteRepository) Save(ctx context.Context, c *models.Conversation) error {
	query := `INSERT INTO conversations (id, last_read, last_event_time)
			VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET last_read = excluded.last_read,
				last_event_time = excluded.last_event_time
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, timeToMillis(c.LastRead), timeToMillis(c.LastEventTime))
	if err != nil {
		return fmt.Errorf("failed to upsert conversation: %w", err)
	}
	return nil
}

// GetByID returns a single conversation record.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, last_read, last_event_time FROM conversations WHERE id = ?`, id)

	c := &models.Conversation{}
	var lastRead, lastEvent int64
	err := row.Scan(&c.ID, &lastRead, &lastEvent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select conversation: %w", err)
	}
	c.LastRead = millisToTime(lastRead)
	c.LastEventTime = millisToTime(lastEvent)
	return c, nil
}

func timeToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
