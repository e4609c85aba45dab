package task

import (
	"context"
	"log"

	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/port"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueProcessEvents(ctx context.Context, events []model.StorageEvent) error {
	log.Printf("dropping %d storage events: no queue configured", len(events))
	return nil
}
