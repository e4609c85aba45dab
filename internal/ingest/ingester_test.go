package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fvidal/derivatives-ms-go/internal/mock"
	"github.com/fvidal/derivatives-ms-go/internal/model"
)

type testMessage struct {
	mu      sync.Mutex
	event   model.StorageEvent
	acked   bool
	retried bool
	err     error
}

func (m *testMessage) Event() model.StorageEvent { return m.event }

func (m *testMessage) Ack() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acked = true
}

func (m *testMessage) Retry(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retried = true
	m.err = err
}

func putMsg(key string) *testMessage {
	return &testMessage{event: model.StorageEvent{Action: model.ActionPut, ObjectKey: key, Timestamp: time.Now()}}
}

func TestHandleBatch_DeleteIsAckedWithoutIO(t *testing.T) {
	proc := &mock.Processor{}
	ing := New(proc, time.Second)
	msg := &testMessage{event: model.StorageEvent{Action: model.ActionDelete, ObjectKey: "b/old.jpg"}}

	stats := ing.HandleBatch(context.Background(), []Message{msg})

	if !msg.acked || msg.retried {
		t.Error("delete events must be acked, never retried")
	}
	if proc.CallCount() != 0 {
		t.Error("delete events must not reach the processor")
	}
	if stats.Skipped != 1 || stats.Processed != 0 || stats.Failed != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestHandleBatch_DerivativeIsAcked(t *testing.T) {
	proc := &mock.Processor{}
	ing := New(proc, time.Second)
	msg := putMsg("properties/42/images/001.thumb.jpg")

	ing.HandleBatch(context.Background(), []Message{msg})

	if !msg.acked {
		t.Error("derivative keys must be acked")
	}
	if proc.CallCount() != 0 {
		t.Error("derivative keys must never be reprocessed")
	}
}

func TestHandleBatch_NonMediaIsAcked(t *testing.T) {
	proc := &mock.Processor{}
	ing := New(proc, time.Second)
	msg := putMsg("misc/readme.txt")

	stats := ing.HandleBatch(context.Background(), []Message{msg})

	if !msg.acked || msg.retried {
		t.Error("non-media keys must be acked without error")
	}
	if proc.CallCount() != 0 {
		t.Error("non-media keys must cause no I/O")
	}
	if stats.Skipped != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestHandleBatch_UnknownRoleIsAcked(t *testing.T) {
	proc := &mock.Processor{}
	ing := New(proc, time.Second)
	msg := putMsg("uploads/misc/file.jpg")

	ing.HandleBatch(context.Background(), []Message{msg})

	if !msg.acked {
		t.Error("unknown-role keys must be acked")
	}
	if proc.CallCount() != 0 {
		t.Error("unknown-role keys must not reach the processor")
	}
}

func TestHandleBatch_SuccessIsAcked(t *testing.T) {
	proc := &mock.Processor{Out: model.ProcessingResult{VariantKeys: []string{"a", "b"}}}
	ing := New(proc, time.Second)
	msg := putMsg("properties/42/images/001.jpg")

	stats := ing.HandleBatch(context.Background(), []Message{msg})

	if !msg.acked || msg.retried {
		t.Error("successful processing must ack")
	}
	if proc.CallCount() != 1 {
		t.Errorf("expected one processor call, got %d", proc.CallCount())
	}
	if len(proc.Calls) == 1 && proc.Calls[0].Role != model.RoleProperty {
		t.Errorf("role = %q, want property", proc.Calls[0].Role)
	}
	if stats.Processed != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestHandleBatch_FailureTriggersRetry(t *testing.T) {
	proc := &mock.Processor{Err: errors.New("rpc non-success")}
	ing := New(proc, time.Second)
	msg := putMsg("properties/42/images/001.jpg")

	stats := ing.HandleBatch(context.Background(), []Message{msg})

	if msg.acked {
		t.Error("a failed message must not be acked")
	}
	if !msg.retried || msg.err == nil {
		t.Error("a failed message must be retried with the cause")
	}
	if stats.Failed != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestHandleBatch_MixedScenario(t *testing.T) {
	proc := &mock.Processor{Out: model.ProcessingResult{VariantKeys: []string{"x.medium.jpg", "x.thumb.jpg"}}}
	ing := New(proc, time.Second)

	msgs := []Message{
		putMsg("a/properties/1/images/001.jpg"),
		&testMessage{event: model.StorageEvent{Action: model.ActionDelete, ObjectKey: "b/old.jpg"}},
		putMsg("c/unknown/file.bin"),
	}

	stats := ing.HandleBatch(context.Background(), msgs)

	if stats.Processed != 1 {
		t.Errorf("success counter = %d, want 1", stats.Processed)
	}
	if stats.Skipped != 2 || stats.Failed != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if proc.CallCount() != 1 {
		t.Errorf("expected exactly one processor call, got %d", proc.CallCount())
	}
	for i, m := range msgs {
		if !m.(*testMessage).acked {
			t.Errorf("message %d must be acked", i)
		}
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	ing := New(&mock.Processor{}, 0)
	if ing.timeout != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", ing.timeout)
	}
}
