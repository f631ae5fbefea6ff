package messages

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

// Save upserts a message by id.
func (r *SQLiteRepository) Save(ctx context.Context, m *models.Message) error {
	var lat, lon float64
	var locName string
	hasLoc := 0
	if m.Location != nil {
		lat, lon, locName, hasLoc = m.Location.Latitude, m.Location.Longitude, m.Location.Name, 1
	}

	query := `INSERT INTO messages (id, conversation_id, type, body, payload,
				has_location, latitude, longitude, location_name,
				upload_id, asset_id, edit_of, edit_time,
				ephemeral, expire_ms, outgoing, seen, local_time, remote_time, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET conversation_id = excluded.conversation_id,
				type = excluded.type,
				body = excluded.body,
				payload = excluded.payload,
				has_location = excluded.has_location,
				latitude = excluded.latitude,
				longitude = excluded.longitude,
				location_name = excluded.location_name,
				upload_id = excluded.upload_id,
				asset_id = excluded.asset_id,
				edit_of = excluded.edit_of,
				edit_time = excluded.edit_time,
				ephemeral = excluded.ephemeral,
				expire_ms = excluded.expire_ms,
				outgoing = excluded.outgoing,
				seen = excluded.seen,
				local_time = excluded.local_time,
				remote_time = excluded.remote_time,
				status = excluded.status
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.ConversationID, string(m.Type), m.Body, m.Payload,
		hasLoc, lat, lon, locName,
		m.UploadID, m.AssetID, m.EditOf, timeToMillis(m.EditTime),
		boolToInt(m.Ephemeral), m.ExpireMillis, boolToInt(m.Outgoing), boolToInt(m.Seen),
		timeToMillis(m.LocalTime), timeToMillis(m.RemoteTime), string(m.Status))
	if err != nil {
		return fmt.Errorf("failed to upsert message: %w", err)
	}
	return nil
}

// GetByID returns a single message record.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	query := `SELECT id, conversation_id, type, body, payload,
			has_location, latitude, longitude, location_name,
			upload_id, asset_id, edit_of, edit_time,
			ephemeral, expire_ms, outgoing, seen, local_time, remote_time, status
			FROM messages WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	m := &models.Message{}
	var mtype, status, locName string
	var hasLoc, ephemeral, outgoing, seen int
	var lat, lon float64
	var editTime, localTime, remoteTime int64
	err := row.Scan(&m.ID, &m.ConversationID, &mtype, &m.Body, &m.Payload,
		&hasLoc, &lat, &lon, &locName,
		&m.UploadID, &m.AssetID, &m.EditOf, &editTime,
		&ephemeral, &m.ExpireMillis, &outgoing, &seen, &localTime, &remoteTime, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select message: %w", err)
	}

	m.Type = models.MessageType(mtype)
	m.Status = models.DeliveryStatus(status)
	if hasLoc != 0 {
		m.Location = &models.Location{Latitude: lat, Longitude: lon, Name: locName}
	}
	m.Ephemeral = ephemeral != 0
	m.Outgoing = outgoing != 0
	m.Seen = seen != 0
	m.EditTime = millisToTime(editTime)
	m.LocalTime = millisToTime(localTime)
	m.RemoteTime = millisToTime(remoteTime)
	return m, nil
}

// ListByConversation returns up to limit messages of a conversation, newest
// first by remote time (local time breaks ties for unconfirmed messages).
func (r *SQLiteRepository) ListByConversation(ctx context.Context, conversationID string, limit int) ([]*models.Message, error) {
	query := `SELECT id, conversation_id, type, body, payload,
			has_location, latitude, longitude, location_name,
			upload_id, asset_id, edit_of, edit_time,
			ephemeral, expire_ms, outgoing, seen, local_time, remote_time, status
			FROM messages WHERE conversation_id = ?
			ORDER BY remote_time DESC, local_time DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		m := &models.Message{}
		var mtype, status, locName string
		var hasLoc, ephemeral, outgoing, seen int
		var lat, lon float64
		var editTime, localTime, remoteTime int64
		err := rows.Scan(&m.ID, &m.ConversationID, &mtype, &m.Body, &m.Payload,
			&hasLoc, &lat, &lon, &locName,
			&m.UploadID, &m.AssetID, &m.EditOf, &editTime,
			&ephemeral, &m.ExpireMillis, &outgoing, &seen, &localTime, &remoteTime, &status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Type = models.MessageType(mtype)
		m.Status = models.DeliveryStatus(status)
		if hasLoc != 0 {
			m.Location = &models.Location{Latitude: lat, Longitude: lon, Name: locName}
		}
		m.Ephemeral = ephemeral != 0
		m.Outgoing = outgoing != 0
		m.Seen = seen != 0
		m.EditTime = millisToTime(editTime)
		m.LocalTime = millisToTime(localTime)
		m.RemoteTime = millisToTime(remoteTime)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return result, nil
}

// DeleteByID removes the message row.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// HasUnreadSince checks for incoming unseen messages after the given time.
func (r *SQLiteRepository) HasUnreadSince(ctx context.Context, conversationID string, since time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM messages
			WHERE conversation_id = ? AND outgoing = 0 AND seen = 0 AND remote_time > ?`
	var n int
	err := r.db.QueryRowContext(ctx, query, conversationID, timeToMillis(since)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return n > 0, nil
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
