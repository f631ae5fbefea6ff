package models

import "time"

// MessageType tags the per-type delivery policy of a message.
type MessageType string

const (
	MessageText      MessageType = "text"
	MessageEmoji     MessageType = "emoji"
	MessageKnock     MessageType = "knock"
	MessageLocation  MessageType = "location"
	MessageRichMedia MessageType = "rich_media"
	MessageAsset     MessageType = "asset"
	MessageGeneric   MessageType = "generic"
)

// DeliveryStatus records the outcome of the last delivery attempt.
type DeliveryStatus string

const (
	DeliveryPending     DeliveryStatus = "pending"
	DeliverySent        DeliveryStatus = "sent"
	DeliveryFailedRetry DeliveryStatus = "failed_retryable"
	DeliveryFailed      DeliveryStatus = "failed"
)

// Location is a geographic point payload.
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// Message is a locally-authored or received message. A message with an
// attachment references exactly one UploadAsset (pre-send, UploadID) or
// Asset (post-send, AssetID), never both once resolved.
type Message struct {
	ID             string
	ConversationID string
	Type           MessageType

	Body     string    // mention-adjusted text for text/emoji/rich-media
	Payload  []byte    // opaque first payload for generic messages
	Location *Location // set for location messages

	UploadID string // pending attachment reference
	AssetID  string // resolved attachment reference

	// EditOf is the id of the message this one edits; EditTime is the
	// confirmed remote time of the original. A zero EditTime means the
	// original send was never acknowledged.
	EditOf   string
	EditTime time.Time

	// Ephemeral messages self-destruct ExpireMillis after delivery and need
	// a distinct wire encoding.
	Ephemeral    bool
	ExpireMillis int64

	Outgoing bool
	Seen     bool

	LocalTime  time.Time
	RemoteTime time.Time
	Status     DeliveryStatus
}

// HasUnconfirmedOriginal reports whether this edit refers to a message whose
// original send was never acknowledged (edit time at the epoch sentinel).
func (m *Message) HasUnconfirmedOriginal() bool {
	return m.EditOf != "" && m.EditTime.IsZero()
}

// Conversation groups messages and tracks read state. LastRead only ever
// advances.
type Conversation struct {
	ID            string
	LastRead      time.Time
	LastEventTime time.Time
}

// AdvanceRead moves LastRead forward to t. Returns false (and leaves the
// conversation untouched) if t is not strictly later.
func (c *Conversation) AdvanceRead(t time.Time) bool {
	if !t.After(c.LastRead) {
		return false
	}
	c.LastRead = t
	return true
}

// Touch moves LastEventTime forward to t if later.
func (c *Conversation) Touch(t time.Time) {
	if t.After(c.LastEventTime) {
		c.LastEventTime = t
	}
}
