package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fvidal/derivatives-ms-go/internal/model"
)

const TypeProcessEvents = "storage:process_events"

// ObjectInfo mirrors the object block of an inbound queue message.
type ObjectInfo struct {
	Key  string `json:"key" validate:"required"`
	Size int64  `json:"size"`
	ETag string `json:"eTag"`
}

// EventRecord is one store notification inside a queue delivery.
type EventRecord struct {
	Action    string     `json:"action" validate:"required"`
	Bucket    string     `json:"bucket"`
	Object    ObjectInfo `json:"object" validate:"required"`
	EventTime string     `json:"eventTime"`
	Account   string     `json:"account"`
}

// ProcessEventsPayload is the queue delivery unit: one batch of records.
type ProcessEventsPayload struct {
	Records []EventRecord `json:"records" validate:"required,min=1,dive"`
}

// ToStorageEvent converts the wire record to the internal event type.
func (r EventRecord) ToStorageEvent() model.StorageEvent {
	ts, err := time.Parse(time.RFC3339, r.EventTime)
	if err != nil {
		ts = time.Time{}
	}
	return model.StorageEvent{
		Action:    model.EventAction(r.Action),
		Bucket:    r.Bucket,
		ObjectKey: r.Object.Key,
		SizeBytes: r.Object.Size,
		ETag:      r.Object.ETag,
		Timestamp: ts,
	}
}

// NewProcessEventsTask creates an Asynq task carrying a batch of storage
// events.
func NewProcessEventsTask(events []model.StorageEvent) (*asynq.Task, error) {
	records := make([]EventRecord, 0, len(events))
	for _, e := range events {
		records = append(records, EventRecord{
			Action:    string(e.Action),
			Bucket:    e.Bucket,
			Object:    ObjectInfo{Key: e.ObjectKey, Size: e.SizeBytes, ETag: e.ETag},
			EventTime: e.Timestamp.Format(time.RFC3339),
		})
	}
	data, err := json.Marshal(ProcessEventsPayload{Records: records})
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-events payload: %w", err)
	}
	return asynq.NewTask(TypeProcessEvents, data), nil
}

// ParseProcessEventsPayload parses the task payload to ProcessEventsPayload.
func ParseProcessEventsPayload(t *asynq.Task) (ProcessEventsPayload, error) {
	var p ProcessEventsPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ProcessEventsPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
