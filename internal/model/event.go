package model

import "time"

// EventAction is the kind of store operation that produced a notification.
type EventAction string

const (
	ActionPut               EventAction = "PutObject"
	ActionDelete            EventAction = "DeleteObject"
	ActionCopy              EventAction = "CopyObject"
	ActionCompleteMultipart EventAction = "CompleteMultipartUpload"
)

// StorageEvent is one object-store notification, as delivered by the queue.
// It is consumed once per delivery and never mutated; redeliveries carry the
// same payload.
type StorageEvent struct {
	Action    EventAction `json:"action"`
	Bucket    string      `json:"bucket"`
	ObjectKey string      `json:"object_key"`
	SizeBytes int64       `json:"size_bytes"`
	ETag      string      `json:"etag"`
	Timestamp time.Time   `json:"timestamp"`
}

// IsDelete reports whether the event describes an object removal.
func (e StorageEvent) IsDelete() bool {
	return e.Action == ActionDelete
}
