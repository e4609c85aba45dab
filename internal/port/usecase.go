package port

import (
	"context"

	"github.com/fvidal/derivatives-ms-go/internal/model"
)

// DerivativeProcessor generates and persists the derivative set for one
// classified object. A non-nil error means the attempt is retryable; the
// result is returned either way for logging.
type DerivativeProcessor interface {
	Process(ctx context.Context, in ProcessInput) (model.ProcessingResult, error)
}

// ProcessInput identifies the object to process and its resolved role.
type ProcessInput struct {
	ObjectKey string
	Role      model.MediaRole
}
