// Package courier is the encrypted-transport collaborator: it accepts a
// plaintext payload for a conversation and returns the server-confirmed send
// time. The device-to-device encryption protocol behind it is a black box.
package courier

import (
	"context"
	"time"
)

// Courier posts one encrypted message to a conversation. recipients narrows
// delivery to a subset of the conversation's devices; nil means everyone.
type Courier interface {
	PostEncryptedMessage(ctx context.Context, conversationID string, payload []byte, recipients []string) (time.Time, error)
}
