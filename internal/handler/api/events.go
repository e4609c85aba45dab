package api

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/port"
)

// S3-compatible bucket notification document, as posted by MinIO webhooks.
type bucketNotification struct {
	Records []notificationRecord `json:"Records"`
}

type notificationRecord struct {
	EventName string `json:"eventName"`
	EventTime string `json:"eventTime"`
	S3        struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key  string `json:"key"`
			Size int64  `json:"size"`
			ETag string `json:"eTag"`
		} `json:"object"`
	} `json:"s3"`
}

type eventsResponse struct {
	Enqueued int `json:"enqueued"`
}

// EventsWebhookHandler accepts a bucket-notification document and enqueues
// its records as one processing batch. This is the entry point of the
// steady-state pipeline in deployments where the store posts webhooks.
func EventsWebhookHandler(dispatcher port.TaskDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var n bucketNotification
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid notification body", err)
			return
		}

		events := make([]model.StorageEvent, 0, len(n.Records))
		for _, rec := range n.Records {
			evt, ok := rec.toStorageEvent()
			if !ok {
				continue
			}
			events = append(events, evt)
		}
		if len(events) == 0 {
			RespondJSON(w, http.StatusOK, eventsResponse{Enqueued: 0})
			return
		}

		if err := dispatcher.EnqueueProcessEvents(r.Context(), events); err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not enqueue storage events", err)
			return
		}

		log.Printf("✅  Enqueued %d storage events", len(events))
		RespondJSON(w, http.StatusAccepted, eventsResponse{Enqueued: len(events)})
	}
}

func (rec notificationRecord) toStorageEvent() (model.StorageEvent, bool) {
	// notification keys arrive URL-encoded
	key, err := url.QueryUnescape(rec.S3.Object.Key)
	if err != nil {
		key = rec.S3.Object.Key
	}
	if key == "" {
		return model.StorageEvent{}, false
	}

	action, ok := actionFor(rec.EventName)
	if !ok {
		return model.StorageEvent{}, false
	}

	ts, err := time.Parse(time.RFC3339, rec.EventTime)
	if err != nil {
		ts = time.Now().UTC()
	}

	return model.StorageEvent{
		Action:    action,
		Bucket:    rec.S3.Bucket.Name,
		ObjectKey: key,
		SizeBytes: rec.S3.Object.Size,
		ETag:      rec.S3.Object.ETag,
		Timestamp: ts,
	}, true
}

func actionFor(eventName string) (model.EventAction, bool) {
	switch {
	case strings.HasPrefix(eventName, "s3:ObjectCreated:CompleteMultipartUpload"):
		return model.ActionCompleteMultipart, true
	case strings.HasPrefix(eventName, "s3:ObjectCreated:Copy"):
		return model.ActionCopy, true
	case strings.HasPrefix(eventName, "s3:ObjectCreated:"):
		return model.ActionPut, true
	case strings.HasPrefix(eventName, "s3:ObjectRemoved:"):
		return model.ActionDelete, true
	default:
		return "", false
	}
}
