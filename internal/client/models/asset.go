// Package models defines the data types of the sync core: resolved and
// pending attachments, messages, and conversations.
package models

import (
	"fmt"
	"strings"
)

// Asset is a resolved, content-addressed attachment. Immutable once created,
// except for LocalPath which may be cleared when the local source turns stale.
type Asset struct {
	ID          string
	Digest      []byte // sha256 of the plaintext content
	Secret      []byte // symmetric key sealing the cached copy
	MimeType    string
	Size        int64
	LocalPath   string // optional filesystem source, empty if none
	RemoteID    string
	AccessToken string
}

// RawAsset describes not-yet-uploaded content: where the bytes live, how big
// they are and what they claim to be.
type RawAsset struct {
	Path     string
	Size     int64
	MimeType string
}

// IsImage reports whether the raw content is an image type. Image uploads
// skip the pending-placeholder post since they are typically fast.
func (r RawAsset) IsImage() bool {
	return strings.HasPrefix(r.MimeType, "image/")
}

// AssetMeta is metadata extracted from raw content by the image-generation
// collaborator.
type AssetMeta struct {
	MimeType string
	Width    int
	Height   int
}

// Retention policies for uploaded content.
const (
	RetentionEternal  = "eternal"
	RetentionVolatile = "volatile"
)

// UploadAssetStatus is the upload lifecycle state.
type UploadAssetStatus string

const (
	UploadNotStarted UploadAssetStatus = "not_started"
	UploadInProgress UploadAssetStatus = "in_progress"
	UploadDone       UploadAssetStatus = "done"
	UploadCancelled  UploadAssetStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s UploadAssetStatus) Terminal() bool {
	return s == UploadDone || s == UploadCancelled
}

// CanTransition reports whether the move from s to next is legal:
// NotStarted -> InProgress -> Done, and any non-terminal state -> Cancelled.
func (s UploadAssetStatus) CanTransition(next UploadAssetStatus) bool {
	switch next {
	case UploadInProgress:
		return s == UploadNotStarted
	case UploadDone:
		return s == UploadInProgress
	case UploadCancelled:
		return !s.Terminal()
	default:
		return false
	}
}

// PreviewState tags the Preview variant.
type PreviewState string

const (
	PreviewNotReady    PreviewState = "not_ready"
	PreviewNotUploaded PreviewState = "not_uploaded"
	PreviewUploaded    PreviewState = "uploaded"
	PreviewEmpty       PreviewState = "empty"
)

// Preview is the tagged preview variant of an upload. AssetID is the pending
// preview upload in state NotUploaded and the resolved preview asset in state
// Uploaded; it is empty otherwise. Transitions only move forward, a preview
// never regresses to NotReady.
type Preview struct {
	State   PreviewState
	AssetID string
}

func NewPreviewNotReady() Preview { return Preview{State: PreviewNotReady} }

func NewPreviewNotUploaded(id string) Preview {
	return Preview{State: PreviewNotUploaded, AssetID: id}
}

func NewPreviewUploaded(id string) Preview { return Preview{State: PreviewUploaded, AssetID: id} }

func NewPreviewEmpty() Preview { return Preview{State: PreviewEmpty} }

func (p Preview) rank() int {
	switch p.State {
	case PreviewNotReady:
		return 0
	case PreviewNotUploaded:
		return 1
	case PreviewUploaded, PreviewEmpty:
		return 2
	default:
		return -1
	}
}

// Advance returns next if the transition is forward, or an error if next
// would regress the preview state.
func (p Preview) Advance(next Preview) (Preview, error) {
	if next.rank() < 0 {
		return p, fmt.Errorf("unknown preview state %q", next.State)
	}
	if next.rank() < p.rank() {
		return p, fmt.Errorf("preview cannot regress from %q to %q", p.State, next.State)
	}
	return next, nil
}

// UploadAsset is the mutable, pre-send representation of an attachment.
type UploadAsset struct {
	ID        string
	Raw       RawAsset
	Public    bool
	Retention string
	Meta      *AssetMeta // nil until processing completes
	Preview   Preview
	Status    UploadAssetStatus
}
