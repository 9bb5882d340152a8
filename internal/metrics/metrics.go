// ABOUTME: Prometheus metrics for the frame pipeline
// ABOUTME: Counts scheduler activity and sink process churn
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scheduler metrics
var (
	FramesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecast_frames_submitted_total",
			Help: "Frames handed to a scheduler by producers",
		},
	)

	FramesEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecast_frames_emitted_total",
			Help: "Fresh frames written to the sink",
		},
	)

	FramesRepeated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecast_frames_repeated_total",
			Help: "Ticks that re-sent the last frame because no new frame was pending",
		},
	)

	FramesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecast_frames_dropped_total",
			Help: "Frames discarded because the pending queue was full",
		},
	)

	PendingDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "framecast_pending_frames",
			Help: "Frames currently buffered awaiting emission",
		},
	)
)

// Sink metrics
var (
	SinkResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecast_sink_resets_total",
			Help: "Sink process launches, including the initial one",
		},
	)
)

// Ingest metrics
var (
	IngestProducers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "framecast_ingest_producers",
			Help: "Producers currently connected to the ingest server",
		},
	)

	IngestFramesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecast_ingest_frames_received_total",
			Help: "Frames received over the ingest websocket",
		},
	)

	IngestDecodeErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "framecast_ingest_decode_errors_total",
			Help: "Ingest messages rejected as malformed",
		},
	)
)
