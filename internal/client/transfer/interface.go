// Package transfer is the remote asset I/O collaborator: it moves attachment
// bytes to and from remote storage. Implementations map their client
// library's failures to common.TransportError so callers can classify
// without knowing the backend.
package transfer

import (
	"context"
	"io"
)

// Metadata describes content being uploaded.
type Metadata struct {
	MimeType  string
	Size      int64
	Public    bool
	Retention string
	Digest    []byte
}

// Result identifies successfully uploaded content.
type Result struct {
	RemoteID    string
	AccessToken string
}

// Descriptor identifies remote content to download.
type Descriptor struct {
	RemoteID    string
	AccessToken string
}

// Transfer uploads and downloads asset content.
type Transfer interface {
	// LoadContent streams the remote content for the descriptor. Missing
	// content yields a TransportError with StatusNotFound.
	LoadContent(ctx context.Context, d Descriptor) (io.ReadCloser, error)

	// Upload stores content and returns its remote identity. No partial
	// result is returned on failure.
	Upload(ctx context.Context, meta Metadata, content io.Reader) (*Result, error)
}
