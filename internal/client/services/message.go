package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/arefyev/sealmsg/internal/client/courier"
	"github.com/arefyev/sealmsg/internal/client/imaging"
	"github.com/arefyev/sealmsg/internal/client/models"
	"github.com/arefyev/sealmsg/internal/client/queue"
	"github.com/arefyev/sealmsg/internal/client/repositories/conversations"
	"github.com/arefyev/sealmsg/internal/client/repositories/messages"
	"github.com/arefyev/sealmsg/internal/client/repositories/metadata"
	"github.com/arefyev/sealmsg/internal/client/repositories/uploads"
	"github.com/arefyev/sealmsg/internal/client/taskreg"
	"github.com/arefyev/sealmsg/internal/client/wire"
	"github.com/arefyev/sealmsg/internal/common"
	"github.com/arefyev/sealmsg/internal/logging"
)

// AssetUploader is the slice of AssetService the orchestrator needs.
type AssetUploader interface {
	UploadRaw(ctx context.Context, raw models.RawAsset, public bool, retention string) (*models.Asset, error)
}

// AssetLookup resolves uploaded assets back into records for wire references.
type AssetLookup interface {
	GetByID(ctx context.Context, id string) (*models.Asset, error)
}

// MessageDeps bundles the collaborators of MessageService.
type MessageDeps struct {
	Messages      messages.Repository
	Conversations conversations.Repository
	Uploads       uploads.Repository
	Assets        AssetLookup
	Uploader      AssetUploader
	Courier       courier.Courier
	Imaging       imaging.Generator
	Registry      *taskreg.Registry
	Metadata      metadata.Repository
	Enricher      queue.Enricher
	Logger        logging.Logger
}

// MessageService drives message delivery: per-type payload construction,
// the attachment upload pipeline, and post-send reconciliation of message
// and conversation state.
type MessageService struct {
	messages messages.Repository
	convs    conversations.Repository
	uploads  uploads.Repository
	assets   AssetLookup
	uploader AssetUploader
	courier  courier.Courier
	imaging  imaging.Generator
	reg      *taskreg.Registry
	meta     metadata.Repository
	enricher queue.Enricher
	log      logging.Logger
	now      func() time.Time
}

// NewMessageService wires the orchestrator. Enricher may be nil for
// deployments without a background worker.
func NewMessageService(d MessageDeps) *MessageService {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &MessageService{
		messages: d.Messages,
		convs:    d.Conversations,
		uploads:  d.Uploads,
		assets:   d.Assets,
		uploader: d.Uploader,
		courier:  d.Courier,
		imaging:  d.Imaging,
		reg:      d.Registry,
		meta:     d.Metadata,
		enricher: d.Enricher,
		log:      log,
		now:      time.Now,
	}
}

// processKey dedups metadata extraction and preview preparation per upload.
func processKey(uploadID string) string { return "process:" + uploadID }

// sendKey dedups the whole upload pipeline per upload.
func sendKey(uploadID string) string { return "send:" + uploadID }

var urlPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

// Send delivers the message according to its type and reconciles local state
// with the outcome. The returned message reflects the persisted record after
// reconciliation.
func (s *MessageService) Send(ctx context.Context, m *models.Message) (*models.Message, error) {
	if m.LocalTime.IsZero() {
		m.LocalTime = s.now()
	}
	if m.Status == "" {
		m.Status = models.DeliveryPending
	}
	if err := s.messages.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("persisting outgoing message %s: %w", m.ID, err)
	}

	var confirmed time.Time
	var err error
	switch m.Type {
	case models.MessageAsset:
		return s.sendAsset(ctx, m)
	case models.MessageKnock:
		confirmed, err = s.post(ctx, m, wire.Envelope{Kind: wire.KindKnock, Knock: &wire.Knock{}})
	case models.MessageText, models.MessageEmoji:
		confirmed, err = s.sendText(ctx, m)
	case models.MessageRichMedia:
		confirmed, err = s.sendText(ctx, m)
		if err == nil {
			s.enqueueEnrichment(ctx, m)
		}
	case models.MessageLocation:
		confirmed, err = s.sendLocation(ctx, m)
	case models.MessageGeneric:
		confirmed, err = s.sendGeneric(ctx, m)
	default:
		return nil, fmt.Errorf("message %s has unsupported type %q: %w", m.ID, m.Type, common.ErrInternal)
	}
	return s.reconcile(ctx, m, confirmed, err)
}

// sendText covers text, emoji-only and rich-media bodies. An edit whose
// original was never acknowledged is downgraded to a plain send.
func (s *MessageService) sendText(ctx context.Context, m *models.Message) (time.Time, error) {
	text := &wire.Text{Body: m.Body}
	editRef := false
	switch {
	case m.HasUnconfirmedOriginal():
		s.log.Debug(ctx, "original never confirmed, sending edit as plain text", "message_id", m.ID, "edit_of", m.EditOf)
	case m.EditOf != "":
		editRef = true
		text.EditOf = m.EditOf
		text.EditTime = m.EditTime.UnixMilli()
	}

	confirmed, err := s.post(ctx, m, wire.Envelope{Kind: wire.KindText, Text: text})
	if err != nil {
		return time.Time{}, err
	}
	if editRef {
		if rerr := s.replaceOriginal(ctx, m, confirmed); rerr != nil {
			s.log.Error(ctx, "failed to replace edited original", "message_id", m.ID, "edit_of", m.EditOf, "error", rerr)
		}
	}
	return confirmed, nil
}

// replaceOriginal rewrites the edited message record with the edited content
// at the new confirmed time. When the original record is gone, a fallback is
// synthesized from the edit itself.
func (s *MessageService) replaceOriginal(ctx context.Context, edit *models.Message, confirmed time.Time) error {
	orig, err := s.messages.GetByID(ctx, edit.EditOf)
	if errors.Is(err, common.ErrNotFound) {
		fallback := *edit
		fallback.ID = edit.EditOf
		fallback.EditOf = ""
		fallback.EditTime = time.Time{}
		orig = &fallback
	} else if err != nil {
		return fmt.Errorf("loading edited original %s: %w", edit.EditOf, err)
	}

	orig.Body = edit.Body
	orig.RemoteTime = confirmed
	orig.Status = models.DeliverySent
	if err := s.messages.Save(ctx, orig); err != nil {
		return fmt.Errorf("saving edited original %s: %w", orig.ID, err)
	}
	return nil
}

func (s *MessageService) sendLocation(ctx context.Context, m *models.Message) (time.Time, error) {
	if m.Location == nil {
		return time.Time{}, fmt.Errorf("location message %s has no location: %w", m.ID, common.ErrFailedExpectations)
	}
	env := wire.Envelope{Kind: wire.KindLocation, Location: &wire.Location{
		Latitude:  m.Location.Latitude,
		Longitude: m.Location.Longitude,
		Name:      m.Location.Name,
	}}
	if m.Ephemeral {
		env = wire.WrapEphemeral(env, m.ExpireMillis)
	}
	return s.post(ctx, m, env)
}

// sendGeneric forwards the attached payload verbatim. Generic payloads are
// opaque, so an ephemeral generic message has no safe encoding and fails.
func (s *MessageService) sendGeneric(ctx context.Context, m *models.Message) (time.Time, error) {
	if len(m.Payload) == 0 {
		return time.Time{}, fmt.Errorf("generic message %s has no payload: %w", m.ID, common.ErrInternal)
	}
	if m.Ephemeral && !wire.CanWrapEphemeral(wire.KindGeneric) {
		return time.Time{}, fmt.Errorf("generic message %s cannot be sent ephemerally: %w", m.ID, common.ErrInternal)
	}
	return s.postBytes(ctx, m, m.Payload)
}

// enqueueEnrichment schedules link-preview generation for the sent message.
// Best effort: failures are logged, never surfaced to the sender.
func (s *MessageService) enqueueEnrichment(ctx context.Context, m *models.Message) {
	if s.enricher == nil {
		return
	}
	urls := urlPattern.FindAllString(m.Body, -1)
	if len(urls) == 0 {
		return
	}
	p := queue.LinkPreviewPayload{MessageID: m.ID, ConversationID: m.ConversationID, URLs: urls}
	if err := s.enricher.EnqueueLinkPreview(ctx, p); err != nil {
		s.log.Warn(ctx, "failed to schedule link preview enrichment", "message_id", m.ID, "error", err)
	}
}

// uploadOutcome is what a deduplicated pipeline run hands every waiter: the
// gateway-confirmed time and the resolved body asset.
type uploadOutcome struct {
	confirmed time.Time
	assetID   string
}

// sendAsset deduplicates concurrent sends for the same attachment: the first
// caller runs the upload pipeline, later callers join the in-flight run and
// observe the same result.
func (s *MessageService) sendAsset(ctx context.Context, m *models.Message) (*models.Message, error) {
	if m.UploadID == "" {
		return nil, fmt.Errorf("asset message %s has no upload reference: %w", m.ID, common.ErrFailedExpectations)
	}

	h := s.reg.Do(sendKey(m.UploadID), func(taskCtx context.Context) (any, error) {
		confirmed, perr := s.runUploadPipeline(taskCtx, m)
		if perr != nil {
			return nil, perr
		}
		return uploadOutcome{confirmed: confirmed, assetID: m.AssetID}, nil
	})
	res, err := h.Wait(ctx)
	h.Release()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("waiting for upload of message %s: %w", m.ID, ctx.Err())
	}

	// the pipeline persisted message updates; pick them up before reconciling
	if latest, gerr := s.messages.GetByID(ctx, m.ID); gerr == nil {
		m = latest
	}

	var confirmed time.Time
	if err == nil {
		out := res.(uploadOutcome)
		confirmed = out.confirmed
		// a joined run resolved the shared upload under another message;
		// adopt its asset reference so this record does not keep pointing at
		// the removed upload row
		if m.AssetID == "" {
			m.AssetID = out.assetID
		}
		m.UploadID = ""
	}
	return s.reconcile(ctx, m, confirmed, err)
}

// runUploadPipeline performs the strictly sequential attachment send:
// wait for processing, check the upload state, post a placeholder for slow
// content, settle the preview, upload the body, then post the final payload.
func (s *MessageService) runUploadPipeline(ctx context.Context, m *models.Message) (time.Time, error) {
	// processing (metadata, preview prep) is started at attach time; join it
	// if still in flight. A processing failure leaves Meta unset and is not
	// fatal to the send.
	if h, ok := s.reg.Lookup(processKey(m.UploadID)); ok {
		_, werr := h.Wait(ctx)
		h.Release()
		if ctx.Err() != nil {
			return time.Time{}, fmt.Errorf("upload %s abandoned: %w", m.UploadID, common.ErrCancelled)
		}
		if werr != nil {
			s.log.Warn(ctx, "attachment processing failed, sending without metadata", "upload_id", m.UploadID, "error", werr)
		}
	}

	up, err := s.uploads.GetByID(ctx, m.UploadID)
	if errors.Is(err, common.ErrNotFound) {
		return time.Time{}, fmt.Errorf("upload record %s missing: %w", m.UploadID, common.ErrFailedExpectations)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("loading upload %s: %w", m.UploadID, err)
	}
	if up.Status == models.UploadCancelled {
		return time.Time{}, fmt.Errorf("upload %s: %w", up.ID, common.ErrCancelled)
	}

	// slow (non-image) content announces itself before the bytes move, so
	// recipients see a pending attachment immediately
	if up.Status == models.UploadNotStarted && !up.Raw.IsImage() {
		placeholder := wire.Envelope{Kind: wire.KindAsset, Asset: &wire.Asset{Pending: true, Caption: m.Body}}
		if _, err := s.post(ctx, m, placeholder); err != nil {
			return time.Time{}, err
		}
	}

	if up.Status == models.UploadNotStarted {
		if !up.Status.CanTransition(models.UploadInProgress) {
			return time.Time{}, fmt.Errorf("upload %s cannot start from %q: %w", up.ID, up.Status, common.ErrFailedExpectations)
		}
		up.Status = models.UploadInProgress
		if err := s.uploads.Save(ctx, up); err != nil {
			return time.Time{}, fmt.Errorf("saving upload %s: %w", up.ID, err)
		}
	}

	if up.Preview.State == models.PreviewNotReady {
		if err := s.createPreview(ctx, up); err != nil {
			return time.Time{}, err
		}
	}

	var previewRef *wire.AssetRef
	if up.Preview.State == models.PreviewNotUploaded {
		ref, err := s.uploadPreview(ctx, m, up)
		if err != nil {
			return time.Time{}, err
		}
		previewRef = ref
	} else if up.Preview.State == models.PreviewUploaded {
		asset, err := s.assets.GetByID(ctx, up.Preview.AssetID)
		if err != nil {
			return time.Time{}, fmt.Errorf("loading preview asset %s: %w", up.Preview.AssetID, err)
		}
		previewRef = assetRef(asset)
	}

	body, err := s.uploader.UploadRaw(ctx, up.Raw, up.Public, up.Retention)
	if err != nil {
		return time.Time{}, err
	}

	if !up.Status.CanTransition(models.UploadDone) {
		return time.Time{}, fmt.Errorf("upload %s cannot finish from %q: %w", up.ID, up.Status, common.ErrFailedExpectations)
	}
	up.Status = models.UploadDone
	if err := s.uploads.Save(ctx, up); err != nil {
		return time.Time{}, fmt.Errorf("saving upload %s: %w", up.ID, err)
	}

	m.AssetID = body.ID
	env := wire.Envelope{Kind: wire.KindAsset, Asset: &wire.Asset{
		Body:    assetRef(body),
		Preview: previewRef,
		Caption: m.Body,
	}}
	if m.Ephemeral {
		env = wire.WrapEphemeral(env, m.ExpireMillis)
	}
	confirmed, err := s.post(ctx, m, env)
	if err != nil {
		return time.Time{}, err
	}

	// the pre-send record has served its purpose
	m.UploadID = ""
	if err := s.messages.Save(ctx, m); err != nil {
		s.log.Error(ctx, "failed to persist resolved asset reference", "message_id", m.ID, "error", err)
	}
	if err := s.uploads.Remove(ctx, up.ID); err != nil {
		s.log.Warn(ctx, "failed to remove finished upload record", "upload_id", up.ID, "error", err)
	}
	return confirmed, nil
}

// createPreview settles a NotReady preview: either a pending preview upload
// record exists afterwards (NotUploaded) or the content has none (Empty).
func (s *MessageService) createPreview(ctx context.Context, up *models.UploadAsset) error {
	raw, err := s.imaging.GeneratePreview(ctx, up.Raw.Path, imaging.DefaultPreviewConstraints)
	switch {
	case errors.Is(err, imaging.ErrNoPreview):
		next, aerr := up.Preview.Advance(models.NewPreviewEmpty())
		if aerr != nil {
			return aerr
		}
		up.Preview = next
	case err != nil:
		return fmt.Errorf("generating preview for upload %s: %w", up.ID, err)
	default:
		pv := &models.UploadAsset{
			ID:        uuid.NewString(),
			Raw:       *raw,
			Public:    up.Public,
			Retention: up.Retention,
			Preview:   models.NewPreviewEmpty(),
			Status:    models.UploadNotStarted,
		}
		if err := s.uploads.Save(ctx, pv); err != nil {
			return fmt.Errorf("saving preview upload: %w", err)
		}
		next, aerr := up.Preview.Advance(models.NewPreviewNotUploaded(pv.ID))
		if aerr != nil {
			return aerr
		}
		up.Preview = next
	}
	if err := s.uploads.Save(ctx, up); err != nil {
		return fmt.Errorf("saving upload %s: %w", up.ID, err)
	}
	return nil
}

// uploadPreview moves a NotUploaded preview to Uploaded and posts an updated
// pending message so recipients can render the thumbnail before the body
// finishes.
func (s *MessageService) uploadPreview(ctx context.Context, m *models.Message, up *models.UploadAsset) (*wire.AssetRef, error) {
	pv, err := s.uploads.GetByID(ctx, up.Preview.AssetID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("preview upload %s vanished: %w", up.Preview.AssetID, common.ErrFailedExpectations)
	}
	if err != nil {
		return nil, fmt.Errorf("loading preview upload %s: %w", up.Preview.AssetID, err)
	}

	asset, err := s.uploader.UploadRaw(ctx, pv.Raw, up.Public, up.Retention)
	if err != nil {
		return nil, err
	}

	next, aerr := up.Preview.Advance(models.NewPreviewUploaded(asset.ID))
	if aerr != nil {
		return nil, aerr
	}
	up.Preview = next
	if err := s.uploads.Save(ctx, up); err != nil {
		return nil, fmt.Errorf("saving upload %s: %w", up.ID, err)
	}
	if err := s.uploads.Remove(ctx, pv.ID); err != nil {
		s.log.Warn(ctx, "failed to remove uploaded preview record", "upload_id", pv.ID, "error", err)
	}

	ref := assetRef(asset)
	env := wire.Envelope{Kind: wire.KindAsset, Asset: &wire.Asset{Pending: true, Preview: ref, Caption: m.Body}}
	if _, err := s.post(ctx, m, env); err != nil {
		return nil, err
	}
	return ref, nil
}

func assetRef(a *models.Asset) *wire.AssetRef {
	return &wire.AssetRef{
		ID:       a.ID,
		RemoteID: a.RemoteID,
		Token:    a.AccessToken,
		Key:      a.Secret,
		Digest:   a.Digest,
		MimeType: a.MimeType,
		Size:     a.Size,
	}
}

// post encodes the envelope and transmits it.
func (s *MessageService) post(ctx context.Context, m *models.Message, env wire.Envelope) (time.Time, error) {
	data, err := wire.Encode(env)
	if err != nil {
		return time.Time{}, err
	}
	return s.postBytes(ctx, m, data)
}

// postBytes transmits raw payload bytes and mirrors what was sent into the
// local message record so local state matches the wire.
func (s *MessageService) postBytes(ctx context.Context, m *models.Message, data []byte) (time.Time, error) {
	confirmed, err := s.courier.PostEncryptedMessage(ctx, m.ConversationID, data, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("posting message %s: %w", m.ID, err)
	}
	m.Payload = data
	m.RemoteTime = confirmed
	if err := s.messages.Save(ctx, m); err != nil {
		return time.Time{}, fmt.Errorf("persisting posted message %s: %w", m.ID, err)
	}
	return confirmed, nil
}

// reconcile records the delivery outcome on the message and, on success,
// advances the conversation's read state.
func (s *MessageService) reconcile(ctx context.Context, m *models.Message, confirmed time.Time, sendErr error) (*models.Message, error) {
	if sendErr != nil {
		if common.TransportStatusOf(sendErr) == common.StatusForbidden {
			// the server no longer trusts this device; force re-registration
			s.log.Warn(ctx, "server rejected device credentials, invalidating registration", "message_id", m.ID)
			if derr := s.meta.Delete(ctx, metadata.KeyDeviceRegistration); derr != nil {
				s.log.Error(ctx, "failed to invalidate device registration", "error", derr)
			}
		}
		if common.IsRetryable(sendErr) {
			m.Status = models.DeliveryFailedRetry
		} else {
			m.Status = models.DeliveryFailed
		}
		if err := s.messages.Save(ctx, m); err != nil {
			s.log.Error(ctx, "failed to record delivery failure", "message_id", m.ID, "error", err)
		}
		return m, sendErr
	}

	m.Status = models.DeliverySent
	m.RemoteTime = confirmed
	if err := s.messages.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("recording delivery of message %s: %w", m.ID, err)
	}
	if err := s.updateConversation(ctx, m.ConversationID, confirmed); err != nil {
		// the send itself succeeded; read-state repair can happen on a later event
		s.log.Error(ctx, "failed to update conversation state", "conversation_id", m.ConversationID, "error", err)
	}
	return m, nil
}

// updateConversation advances lastRead to the confirmed send time unless an
// incoming unread message arrived in between, and always touches the last
// event time. lastRead never moves backwards.
func (s *MessageService) updateConversation(ctx context.Context, conversationID string, confirmed time.Time) error {
	conv, err := s.convs.GetByID(ctx, conversationID)
	if errors.Is(err, common.ErrNotFound) {
		conv = &models.Conversation{ID: conversationID}
	} else if err != nil {
		return fmt.Errorf("loading conversation %s: %w", conversationID, err)
	}

	unread, err := s.messages.HasUnreadSince(ctx, conversationID, conv.LastRead)
	if err != nil {
		return fmt.Errorf("checking unread state of %s: %w", conversationID, err)
	}
	if !unread {
		conv.AdvanceRead(confirmed)
	}
	conv.Touch(confirmed)
	if err := s.convs.Save(ctx, conv); err != nil {
		return fmt.Errorf("saving conversation %s: %w", conversationID, err)
	}
	return nil
}

// PrepareAttachment creates the pending upload and its owning message, and
// kicks off background processing (metadata extraction) under the upload's
// processing key. The processing handle is intentionally not released: an
// abandoned send must not cancel shared processing, and the registry evicts
// the key on completion.
func (s *MessageService) PrepareAttachment(ctx context.Context, conversationID string, raw models.RawAsset, public bool, retention string, caption string) (*models.Message, error) {
	up := &models.UploadAsset{
		ID:        uuid.NewString(),
		Raw:       raw,
		Public:    public,
		Retention: retention,
		Preview:   models.NewPreviewNotReady(),
		Status:    models.UploadNotStarted,
	}
	if err := s.uploads.Save(ctx, up); err != nil {
		return nil, fmt.Errorf("persisting upload: %w", err)
	}

	m := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Type:           models.MessageAsset,
		Body:           caption,
		UploadID:       up.ID,
		Outgoing:       true,
		LocalTime:      s.now(),
		Status:         models.DeliveryPending,
	}
	if err := s.messages.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("persisting attachment message: %w", err)
	}

	s.reg.Do(processKey(up.ID), func(taskCtx context.Context) (any, error) {
		meta, err := s.imaging.ExtractMetadata(taskCtx, up.Raw.Path)
		if err != nil {
			return nil, fmt.Errorf("extracting metadata for upload %s: %w", up.ID, err)
		}
		// re-read before writing: the record may have been cancelled or
		// removed while extraction ran, and a stale snapshot must not
		// resurrect it
		current, err := s.uploads.GetByID(taskCtx, up.ID)
		if errors.Is(err, common.ErrNotFound) {
			return meta, nil
		}
		if err != nil {
			return nil, fmt.Errorf("loading upload %s: %w", up.ID, err)
		}
		if current.Status.Terminal() {
			return meta, nil
		}
		current.Meta = meta
		if err := s.uploads.Save(taskCtx, current); err != nil {
			return nil, fmt.Errorf("saving upload %s: %w", up.ID, err)
		}
		return meta, nil
	})

	return m, nil
}

// CancelUpload marks a pending upload cancelled. Terminal uploads are left
// untouched; a running pipeline observes the record at its next checkpoint.
func (s *MessageService) CancelUpload(ctx context.Context, uploadID string) error {
	up, err := s.uploads.GetByID(ctx, uploadID)
	if err != nil {
		return fmt.Errorf("loading upload %s: %w", uploadID, err)
	}
	if !up.Status.CanTransition(models.UploadCancelled) {
		return fmt.Errorf("upload %s already %q: %w", uploadID, up.Status, common.ErrValidation)
	}
	up.Status = models.UploadCancelled
	if err := s.uploads.Save(ctx, up); err != nil {
		return fmt.Errorf("saving upload %s: %w", uploadID, err)
	}
	return nil
}

// DeleteMessage removes a message together with its pending upload record,
// if any. Sent wire messages are never retracted.
func (s *MessageService) DeleteMessage(ctx context.Context, id string) error {
	m, err := s.messages.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading message %s: %w", id, err)
	}
	if m.UploadID != "" {
		if err := s.uploads.Remove(ctx, m.UploadID); err != nil && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("removing upload %s: %w", m.UploadID, err)
		}
	}
	if err := s.messages.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting message %s: %w", id, err)
	}
	return nil
}
