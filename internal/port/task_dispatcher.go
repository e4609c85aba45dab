package port

import (
	"context"

	"github.com/fvidal/derivatives-ms-go/internal/model"
)

// TaskDispatcher enqueues storage events for asynchronous processing.
type TaskDispatcher interface {
	EnqueueProcessEvents(ctx context.Context, events []model.StorageEvent) error
}
