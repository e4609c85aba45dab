package task

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"

	"github.com/fvidal/derivatives-ms-go/internal/model"
)

func TestDispatcher_EnqueueProcessEvents(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer srv.Close()

	d := NewDispatcher(srv.Addr(), "")
	defer func() { _ = d.Close() }()

	events := []model.StorageEvent{
		{Action: model.ActionPut, Bucket: "media", ObjectKey: "properties/42/images/001.jpg"},
	}
	if err := d.EnqueueProcessEvents(context.Background(), events); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer func() { _ = inspector.Close() }()

	pending, err := inspector.ListPendingTasks("default")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending tasks = %d, want 1", len(pending))
	}
	if pending[0].Type != TypeProcessEvents {
		t.Errorf("task type = %q, want %q", pending[0].Type, TypeProcessEvents)
	}
}
