package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fvidal/derivatives-ms-go/internal/classifier"
	"github.com/fvidal/derivatives-ms-go/internal/job_context"
	"github.com/fvidal/derivatives-ms-go/internal/logger"
	"github.com/fvidal/derivatives-ms-go/internal/metrics"
	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/port"
)

// Outcome is the terminal state of one message within this worker.
// FailedRetry is only terminal here; the queue redelivers until its own
// budget runs out and dead-letters the message itself.
type Outcome string

const (
	SkippedDelete      Outcome = "skipped_delete"
	SkippedDerivative  Outcome = "skipped_derivative"
	SkippedNotMedia    Outcome = "skipped_not_media"
	SkippedUnknownRole Outcome = "skipped_unknown_role"
	ProcessedSuccess   Outcome = "processed"
	FailedRetry        Outcome = "failed_retry"
)

// Message is one queue delivery. Exactly one of Ack or Retry must be called
// per delivery.
type Message interface {
	Event() model.StorageEvent
	Ack()
	Retry(err error)
}

// BatchStats aggregates one HandleBatch run for logging.
type BatchStats struct {
	Processed int
	Skipped   int
	Failed    int
}

// Ingester fans a batch of storage events out to the derivative processor.
type Ingester struct {
	proc    port.DerivativeProcessor
	timeout time.Duration
}

// New builds an Ingester. timeout bounds each message's store+RPC round trip
// so one stuck external call cannot eat the whole redelivery window.
func New(proc port.DerivativeProcessor, timeout time.Duration) *Ingester {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Ingester{proc: proc, timeout: timeout}
}

// HandleBatch handles every message independently and concurrently; messages
// never share mutable state since distinct keys are processed in isolation
// and same-key redeliveries are idempotent. Acks happen per message as soon
// as its work is done; the aggregate log line afterwards never blocks them.
func (ing *Ingester) HandleBatch(ctx context.Context, msgs []Message) BatchStats {
	ctx = job_context.WithBatchID(ctx, uuid.NewString())
	outcomes := make([]Outcome, len(msgs))

	var wg sync.WaitGroup
	for i, msg := range msgs {
		wg.Add(1)
		go func(i int, msg Message) {
			defer wg.Done()
			outcomes[i] = ing.handleMessage(ctx, msg)
		}(i, msg)
	}
	wg.Wait()

	var stats BatchStats
	for _, o := range outcomes {
		switch o {
		case ProcessedSuccess:
			stats.Processed++
		case FailedRetry:
			stats.Failed++
		default:
			stats.Skipped++
		}
	}
	logger.Infof(ctx, "batch done: %d processed, %d skipped, %d failed out of %d messages",
		stats.Processed, stats.Skipped, stats.Failed, len(msgs))
	return stats
}

func (ing *Ingester) handleMessage(ctx context.Context, msg Message) Outcome {
	evt := msg.Event()
	ctx = job_context.WithObjectKey(ctx, evt.ObjectKey)

	if evt.IsDelete() {
		// no derivative cleanup: orphaned derivatives are accepted
		// collateral, not a correctness bug
		msg.Ack()
		metrics.EventsSkipped.WithLabelValues(string(SkippedDelete)).Inc()
		return SkippedDelete
	}
	if classifier.IsDerivative(evt.ObjectKey) {
		// loop-prevention guard: our own writes come back as events
		msg.Ack()
		metrics.EventsSkipped.WithLabelValues(string(SkippedDerivative)).Inc()
		return SkippedDerivative
	}
	if !classifier.IsMedia(evt.ObjectKey) {
		msg.Ack()
		metrics.EventsSkipped.WithLabelValues(string(SkippedNotMedia)).Inc()
		return SkippedNotMedia
	}
	role := classifier.RoleOf(evt.ObjectKey)
	if role == model.RoleNone {
		logger.Infof(ctx, "no role matches %q, skipping", evt.ObjectKey)
		msg.Ack()
		metrics.EventsSkipped.WithLabelValues(string(SkippedUnknownRole)).Inc()
		return SkippedUnknownRole
	}

	procCtx, cancel := context.WithTimeout(ctx, ing.timeout)
	defer cancel()

	start := time.Now()
	res, err := ing.proc.Process(procCtx, port.ProcessInput{ObjectKey: evt.ObjectKey, Role: role})
	metrics.ProcessingDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Errorf(ctx, "processing %q failed, requesting retry: %v", evt.ObjectKey, err)
		msg.Retry(err)
		metrics.EventsFailed.Inc()
		return FailedRetry
	}

	logger.Infof(ctx, "processed %q as %s: %d variants in %dms", evt.ObjectKey, role, len(res.VariantKeys), res.ProcessingTimeMs)
	msg.Ack()
	metrics.EventsProcessed.WithLabelValues(string(role)).Inc()
	return ProcessedSuccess
}
