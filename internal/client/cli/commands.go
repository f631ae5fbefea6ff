package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/arefyev/sealmsg/internal/client/models"
	"github.com/arefyev/sealmsg/internal/common"
)

var errNoConversation = errors.New("no conversation opened")

func (a *App) requireConversation() error {
	if a.currentConv == "" {
		printlnFn("Open a conversation first: open <conversation-id>")
		return errNoConversation
	}
	return nil
}

// Open selects the current conversation, creating its record on first use.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: open <conversation-id>")
		return common.ErrValidation
	}
	id := args[0]

	_, err := a.repos.Conversations.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		err = a.repos.Conversations.Save(ctx, &models.Conversation{ID: id})
	}
	if err != nil {
		printlnFn("Error opening conversation:", err)
		return err
	}
	a.currentConv = id
	return nil
}

// SendText prompts for a body (and optional edit target) and delivers it.
func (a *App) SendText(ctx context.Context) error {
	if err := a.requireConversation(); err != nil {
		return err
	}

	body, err := GetSimpleText(a.reader, "Message text", os.Stdout)
	if err != nil {
		return err
	}
	editOf, err := GetSimpleText(a.reader, "Edit of message id (empty for a new message)", os.Stdout)
	if err != nil {
		return err
	}

	m := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: a.currentConv,
		Type:           models.MessageText,
		Body:           body,
		Outgoing:       true,
	}
	if editOf != "" {
		m.EditOf = editOf
		if orig, err := a.repos.Messages.GetByID(ctx, editOf); err == nil {
			m.EditTime = orig.RemoteTime
		}
	}

	return a.deliver(ctx, m)
}

// Knock sends an attention ping to the current conversation.
func (a *App) Knock(ctx context.Context) error {
	if err := a.requireConversation(); err != nil {
		return err
	}
	m := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: a.currentConv,
		Type:           models.MessageKnock,
		Outgoing:       true,
	}
	return a.deliver(ctx, m)
}

// SendLocation prompts for coordinates and an optional self-destruct expiry.
func (a *App) SendLocation(ctx context.Context) error {
	if err := a.requireConversation(); err != nil {
		return err
	}

	lat, err := a.promptFloat("Latitude")
	if err != nil {
		return err
	}
	lon, err := a.promptFloat("Longitude")
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Place name (optional)", os.Stdout)
	if err != nil {
		return err
	}
	expire, err := GetSimpleText(a.reader, "Self-destruct after seconds (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	m := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: a.currentConv,
		Type:           models.MessageLocation,
		Location:       &models.Location{Latitude: lat, Longitude: lon, Name: name},
		Outgoing:       true,
	}
	if expire != "" {
		seconds, err := strconv.Atoi(expire)
		if err != nil || seconds <= 0 {
			printlnFn("Invalid expiry:", expire)
			return common.ErrValidation
		}
		m.Ephemeral = true
		m.ExpireMillis = int64(seconds) * 1000
	}
	return a.deliver(ctx, m)
}

// Attach prepares a file attachment and sends it.
func (a *App) Attach(ctx context.Context) error {
	if err := a.requireConversation(); err != nil {
		return err
	}

	path, err := GetSimpleText(a.reader, "File path", os.Stdout)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		printlnFn("Cannot read file:", err)
		return err
	}
	caption, err := GetSimpleText(a.reader, "Caption (optional)", os.Stdout)
	if err != nil {
		return err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	raw := models.RawAsset{Path: path, Size: info.Size(), MimeType: mimeType}

	m, err := a.messages.PrepareAttachment(ctx, a.currentConv, raw, false, models.RetentionEternal, caption)
	if err != nil {
		printlnFn("Error preparing attachment:", err)
		return err
	}
	printlnFn("Upload id:", m.UploadID)

	sent, err := a.messages.Send(ctx, m)
	if err != nil {
		printlnFn("Send failed:", err)
		return err
	}
	printlnFn("Sent", sent.ID, "at", sent.RemoteTime.Format("15:04:05"))
	return nil
}

// CancelUpload aborts a pending attachment upload.
func (a *App) CancelUpload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: cancel <upload-id>")
		return common.ErrValidation
	}
	if err := a.messages.CancelUpload(ctx, args[0]); err != nil {
		printlnFn("Error cancelling upload:", err)
		return err
	}
	printlnFn("Upload cancelled")
	return nil
}

// List prints the newest messages of the current conversation.
func (a *App) List(ctx context.Context) error {
	if err := a.requireConversation(); err != nil {
		return err
	}
	msgs, err := a.repos.Messages.ListByConversation(ctx, a.currentConv, 20)
	if err != nil {
		printlnFn("Error listing messages:", err)
		return err
	}
	for _, m := range msgs {
		direction := "<-"
		if m.Outgoing {
			direction = "->"
		}
		when := m.RemoteTime
		if when.IsZero() {
			when = m.LocalTime
		}
		summary := m.Body
		if m.Type == models.MessageAsset {
			summary = fmt.Sprintf("[attachment %s] %s", m.AssetID, m.Body)
		}
		printlnFn(fmt.Sprintf("%s %s %-10s %-16s %s", when.Format("2006-01-02 15:04"), direction, m.Type, m.Status, summary))
	}
	return nil
}

// Delete removes a message (and its pending upload, if any).
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: delete <message-id>")
		return common.ErrValidation
	}
	if err := a.messages.DeleteMessage(ctx, args[0]); err != nil {
		printlnFn("Error deleting message:", err)
		return err
	}
	printlnFn("Deleted")
	return nil
}

// SaveAsset resolves an asset's content and writes it to a local file.
func (a *App) SaveAsset(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: save <asset-id> <destination-path>")
		return common.ErrValidation
	}
	id, dest := args[0], args[1]

	asset, err := a.repos.Assets.GetByID(ctx, id)
	if err != nil {
		printlnFn("Unknown asset:", err)
		return err
	}
	rc, err := a.assets.LoadContent(ctx, asset)
	if err != nil {
		printlnFn("Error loading content:", err)
		return err
	}
	defer rc.Close()

	f, err := os.Create(dest)
	if err != nil {
		printlnFn("Cannot create file:", err)
		return err
	}
	defer f.Close()

	n, err := io.Copy(f, rc)
	if err != nil {
		printlnFn("Error writing file:", err)
		return err
	}
	printlnFn("Saved", n, "bytes to", dest)
	return nil
}

func (a *App) deliver(ctx context.Context, m *models.Message) error {
	sent, err := a.messages.Send(ctx, m)
	if err != nil {
		printlnFn("Send failed:", err)
		return err
	}
	printlnFn("Sent", sent.ID, "at", sent.RemoteTime.Format("15:04:05"))
	return nil
}

func (a *App) promptFloat(prompt string) (float64, error) {
	s, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		printlnFn("Invalid number:", s)
		return 0, common.ErrValidation
	}
	return v, nil
}
