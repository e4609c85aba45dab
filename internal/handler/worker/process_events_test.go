package worker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fvidal/derivatives-ms-go/internal/ingest"
	"github.com/fvidal/derivatives-ms-go/internal/mock"
	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/task"
)

func putRecord(key string) task.EventRecord {
	return task.EventRecord{
		Action:    string(model.ActionPut),
		Bucket:    "media",
		Object:    task.ObjectInfo{Key: key, Size: 123, ETag: "abc"},
		EventTime: time.Now().UTC().Format(time.RFC3339),
	}
}

func TestProcessEventsHandler_EmptyPayloadFailsValidation(t *testing.T) {
	ing := ingest.New(&mock.Processor{}, time.Second)

	err := ProcessEventsHandler(context.Background(), task.ProcessEventsPayload{}, ing)
	if err == nil {
		t.Fatal("expected a validation error for an empty batch")
	}
}

func TestProcessEventsHandler_RecordWithoutKeyFailsValidation(t *testing.T) {
	ing := ingest.New(&mock.Processor{}, time.Second)
	p := task.ProcessEventsPayload{Records: []task.EventRecord{{Action: "PutObject"}}}

	err := ProcessEventsHandler(context.Background(), p, ing)
	if err == nil {
		t.Fatal("expected a validation error for a record without a key")
	}
}

func TestProcessEventsHandler_AllHandled(t *testing.T) {
	proc := &mock.Processor{Out: model.ProcessingResult{VariantKeys: []string{"k.thumb.jpg"}}}
	ing := ingest.New(proc, time.Second)
	p := task.ProcessEventsPayload{Records: []task.EventRecord{
		putRecord("properties/42/images/001.jpg"),
		{Action: string(model.ActionDelete), Object: task.ObjectInfo{Key: "b/old.jpg"}},
		putRecord("c/unknown/file.bin"),
	}}

	if err := ProcessEventsHandler(context.Background(), p, ing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proc.CallCount() != 1 {
		t.Errorf("expected one processor call, got %d", proc.CallCount())
	}
}

func TestProcessEventsHandler_FailureSurfacesForRedelivery(t *testing.T) {
	proc := &mock.Processor{Err: errors.New("transcoder down")}
	ing := ingest.New(proc, time.Second)
	p := task.ProcessEventsPayload{Records: []task.EventRecord{
		putRecord("properties/42/images/001.jpg"),
	}}

	err := ProcessEventsHandler(context.Background(), p, ing)
	if err == nil || !strings.Contains(err.Error(), "transcoder down") {
		t.Fatalf("expected the processing error to surface, got %v", err)
	}
	if !strings.Contains(err.Error(), "1 of 1") {
		t.Errorf("error should carry batch counts, got %v", err)
	}
}
