// Package imaging declares the image-generation collaborator. Decoding,
// scaling and re-encoding happen elsewhere; the sync core only consumes the
// capability.
package imaging

import (
	"context"
	"errors"

	"github.com/arefyev/sealmsg/internal/client/models"
)

// ErrNoPreview signals that no preview can be produced for the content,
// e.g. for non-image attachment types. Callers mark the preview Empty.
var ErrNoPreview = errors.New("no preview available for content")

// Constraints bound the generated preview.
type Constraints struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// DefaultPreviewConstraints is used when the caller has no special needs.
var DefaultPreviewConstraints = Constraints{MaxWidth: 320, MaxHeight: 320, Quality: 80}

// Generator extracts metadata from raw content and renders previews.
type Generator interface {
	// ExtractMetadata inspects the content at path and reports its actual
	// mime type and dimensions.
	ExtractMetadata(ctx context.Context, path string) (*models.AssetMeta, error)

	// GeneratePreview re-encodes the content at path within the given
	// constraints and returns a descriptor of the generated file.
	// Content without a preview form yields ErrNoPreview.
	GeneratePreview(ctx context.Context, path string, c Constraints) (*models.RawAsset, error)
}

// Disabled is a Generator for deployments without an image component:
// metadata stays as authored and nothing ever has a preview.
type Disabled struct{}

func (Disabled) ExtractMetadata(ctx context.Context, path string) (*models.AssetMeta, error) {
	return &models.AssetMeta{}, nil
}

func (Disabled) GeneratePreview(ctx context.Context, path string, c Constraints) (*models.RawAsset, error) {
	return nil, ErrNoPreview
}
