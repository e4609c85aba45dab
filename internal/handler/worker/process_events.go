package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/fvidal/derivatives-ms-go/internal/ingest"
	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/task"
	"github.com/fvidal/derivatives-ms-go/internal/validation"
)

// batchMessage adapts one record of an asynq delivery to the ingester's
// Message contract. Per-record acks are implicit; a retry request is recorded
// and surfaces as a task error, which makes the queue redeliver the whole
// batch. Reprocessing is idempotent and skip guards keep already-handled
// records cheap, so whole-batch redelivery is safe.
type batchMessage struct {
	event model.StorageEvent
	err   error
}

func (m *batchMessage) Event() model.StorageEvent { return m.event }
func (m *batchMessage) Ack()                      {}
func (m *batchMessage) Retry(err error)           { m.err = err }

// ProcessEventsHandler handles a process-events task. It validates the
// payload and delegates the batch to the ingester.
func ProcessEventsHandler(ctx context.Context, p task.ProcessEventsPayload, ing *ingest.Ingester) error {
	if err := validation.ValidateStruct(p); err != nil {
		log.Printf("❌  Payload validation failed: %v", err)
		return err
	}

	msgs := make([]ingest.Message, 0, len(p.Records))
	for _, r := range p.Records {
		msgs = append(msgs, &batchMessage{event: r.ToStorageEvent()})
	}

	stats := ing.HandleBatch(ctx, msgs)
	if stats.Failed == 0 {
		return nil
	}

	var firstErr error
	for _, m := range msgs {
		if bm := m.(*batchMessage); bm.err != nil {
			firstErr = bm.err
			break
		}
	}
	return fmt.Errorf("%d of %d events failed, first error: %w", stats.Failed, len(msgs), firstErr)
}
