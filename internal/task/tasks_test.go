package task

import (
	"testing"
	"time"

	"github.com/fvidal/derivatives-ms-go/internal/model"
)

func TestNewProcessEventsTask(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	events := []model.StorageEvent{
		{Action: model.ActionPut, Bucket: "media", ObjectKey: "properties/42/images/001.jpg", SizeBytes: 2048, ETag: "abc", Timestamp: ts},
		{Action: model.ActionDelete, Bucket: "media", ObjectKey: "b/old.jpg", Timestamp: ts},
	}

	tk, err := NewProcessEventsTask(events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.Type() != TypeProcessEvents {
		t.Errorf("task type = %q, want %q", tk.Type(), TypeProcessEvents)
	}

	p, err := ParseProcessEventsPayload(tk)
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if len(p.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(p.Records))
	}

	evt := p.Records[0].ToStorageEvent()
	if evt.Action != model.ActionPut || evt.ObjectKey != "properties/42/images/001.jpg" {
		t.Errorf("round-tripped event differs: %+v", evt)
	}
	if !evt.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", evt.Timestamp, ts)
	}
	if evt.SizeBytes != 2048 || evt.ETag != "abc" {
		t.Errorf("object fields lost: %+v", evt)
	}
}

func TestToStorageEvent_BadTimestamp(t *testing.T) {
	r := EventRecord{Action: "PutObject", Object: ObjectInfo{Key: "a.jpg"}, EventTime: "not-a-time"}
	evt := r.ToStorageEvent()
	if !evt.Timestamp.IsZero() {
		t.Errorf("unparseable timestamps should zero out, got %v", evt.Timestamp)
	}
}
