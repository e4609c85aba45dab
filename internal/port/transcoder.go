package port

import (
	"context"

	"github.com/fvidal/derivatives-ms-go/internal/model"
)

// ResizeRequest asks the transcoding service for every variant of one source
// object in a single call.
type ResizeRequest struct {
	SourceURL string
	Recipes   []model.VariantRecipe
}

// VariantPayload is one transcoded variant, already decoded to raw bytes.
// Base64 never leaves the transport adapter.
type VariantPayload struct {
	Data        []byte
	SizeBytes   int64
	ContentType string
}

// ResizeResult maps variant names to their payloads.
type ResizeResult struct {
	Variants         map[string]VariantPayload
	ProcessingTimeMs int64
}

// Transcoder is the external resizing engine. Implementations must be safe
// for concurrent use; any non-success response surfaces as an error.
type Transcoder interface {
	ResizeImage(ctx context.Context, req ResizeRequest) (*ResizeResult, error)
	ResizeVideo(ctx context.Context, req ResizeRequest) (*ResizeResult, error)
}
