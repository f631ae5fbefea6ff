// Package wire defines the plaintext message payloads handed to the
// encrypted-transport collaborator, and their CBOR encoding.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2) so the same
// logical payload always produces identical bytes.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Kind tags the payload variant inside an Envelope.
type Kind string

const (
	KindText     Kind = "text"
	KindKnock    Kind = "knock"
	KindLocation Kind = "location"
	KindAsset    Kind = "asset"
	KindGeneric  Kind = "generic"
)

// Text is a plain or edited text message.
type Text struct {
	Body string `cbor:"body"`
	// EditOf/EditTime reference the edited original; EditTime is the
	// original's confirmed time in unix milliseconds.
	EditOf   string `cbor:"edit_of,omitempty"`
	EditTime int64  `cbor:"edit_time,omitempty"`
}

// Knock carries no data beyond its kind.
type Knock struct{}

// Location is a shared geographic point.
type Location struct {
	Latitude  float64 `cbor:"lat"`
	Longitude float64 `cbor:"lon"`
	Name      string  `cbor:"name,omitempty"`
}

// AssetRef describes one remote asset so the recipient can fetch and verify
// it. Key travels inside the end-to-end encrypted payload.
type AssetRef struct {
	ID       string `cbor:"id"`
	RemoteID string `cbor:"remote_id"`
	Token    string `cbor:"token,omitempty"`
	Key      []byte `cbor:"key"`
	Digest   []byte `cbor:"digest"`
	MimeType string `cbor:"mime"`
	Size     int64  `cbor:"size"`
}

// Asset announces an attachment. Pending marks a placeholder for content
// whose upload has not finished yet.
type Asset struct {
	Pending bool      `cbor:"pending,omitempty"`
	Body    *AssetRef `cbor:"asset,omitempty"`
	Preview *AssetRef `cbor:"preview,omitempty"`
	Caption string    `cbor:"caption,omitempty"`
}

// Ephemeral wraps a payload that must self-destruct after ExpireMillis.
type Ephemeral struct {
	ExpireMillis int64    `cbor:"expire_ms"`
	Inner        Envelope `cbor:"inner"`
}

// Envelope is the tagged union posted to the encrypted transport. Exactly
// one variant field is set, matching Kind.
type Envelope struct {
	Kind      Kind       `cbor:"kind"`
	Text      *Text      `cbor:"text,omitempty"`
	Knock     *Knock     `cbor:"knock,omitempty"`
	Location  *Location  `cbor:"location,omitempty"`
	Asset     *Asset     `cbor:"asset,omitempty"`
	Generic   []byte     `cbor:"generic,omitempty"`
	Ephemeral *Ephemeral `cbor:"ephemeral,omitempty"`
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wire: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode serializes an envelope to its wire bytes.
func Encode(e Envelope) ([]byte, error) {
	data, err := encMode.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", e.Kind, err)
	}
	return data, nil
}

// Decode parses wire bytes back into an envelope.
func Decode(data []byte) (Envelope, error) {
	var e Envelope
	if err := cbor.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("decoding payload: %w", err)
	}
	return e, nil
}

// CanWrapEphemeral reports whether payloads of this kind have an
// ephemeral-safe encoding. Generic payloads are opaque and cannot be wrapped.
func CanWrapEphemeral(k Kind) bool {
	switch k {
	case KindText, KindKnock, KindLocation, KindAsset:
		return true
	default:
		return false
	}
}

// WrapEphemeral nests e inside an ephemeral envelope with the given expiry.
func WrapEphemeral(e Envelope, expireMillis int64) Envelope {
	return Envelope{
		Kind:      e.Kind,
		Ephemeral: &Ephemeral{ExpireMillis: expireMillis, Inner: e},
	}
}
