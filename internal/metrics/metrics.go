package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsProcessed counts successfully processed events per role.
	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "derivatives_events_processed_total",
		Help: "Storage events processed successfully, by media role.",
	}, []string{"role"})

	// EventsSkipped counts acked-without-work events per skip reason.
	EventsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "derivatives_events_skipped_total",
		Help: "Storage events acked without processing, by reason.",
	}, []string{"reason"})

	// EventsFailed counts events handed back for redelivery.
	EventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "derivatives_events_failed_total",
		Help: "Storage events that failed processing and were retried.",
	})

	// ProcessingDuration observes end-to-end per-event processing time.
	ProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "derivatives_processing_duration_seconds",
		Help:    "Per-event processing duration, fetch through last variant write.",
		Buckets: prometheus.DefBuckets,
	})
)
