// Package queue schedules best-effort background enrichment through asynq.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TaskLinkPreview is scheduled after a rich-media message is sent so a
	// worker can fetch link previews and post an enrichment update.
	TaskLinkPreview = "message:link_preview"

	// queueEnrichment keeps enrichment work off the default queue.
	queueEnrichment = "enrichment"
)

// LinkPreviewPayload tells the worker which message to enrich.
type LinkPreviewPayload struct {
	MessageID      string   `json:"message_id"`
	ConversationID string   `json:"conversation_id"`
	URLs           []string `json:"urls"`
}

// Enricher schedules link-preview enrichment for a sent message.
type Enricher interface {
	EnqueueLinkPreview(ctx context.Context, p LinkPreviewPayload) error
}

// Client is an asynq-backed Enricher.
type Client struct {
	client *asynq.Client
}

// NewClient wraps an asynq client.
func NewClient(c *asynq.Client) *Client {
	return &Client{client: c}
}

func (c *Client) EnqueueLinkPreview(ctx context.Context, p LinkPreviewPayload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal link preview payload: %w", err)
	}
	task := asynq.NewTask(TaskLinkPreview, data)
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue(queueEnrichment), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue link preview: %w", err)
	}
	return nil
}

// HandleLinkPreview adapts a typed handler to asynq's task interface.
func HandleLinkPreview(fn func(ctx context.Context, p LinkPreviewPayload) error) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p LinkPreviewPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("unmarshal link preview payload: %w", err)
		}
		return fn(ctx, p)
	}
}
