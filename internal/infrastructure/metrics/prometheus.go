package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diamond_api_calls_total",
			Help: "Total number of api-sports calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diamond_api_call_duration_seconds",
			Help:    "Duration of api-sports calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	SyncOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diamond_sync_operations_total",
			Help: "Total number of team sync operations",
		},
		[]string{"trigger", "status"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diamond_sync_duration_seconds",
			Help:    "Duration of team sync operations in seconds",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"trigger"},
	)

	TeamsUpsertedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diamond_teams_upserted_total",
			Help: "Total number of team rows written by upserts",
		},
	)

	TeamsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diamond_teams_skipped_total",
			Help: "Total number of team records skipped during upserts",
		},
		[]string{"reason"},
	)
)

// Skip reasons
const (
	SkipIncomplete = "incomplete"
	SkipExcluded   = "excluded"
)

// Sync triggers
const (
	TriggerHTTP     = "http"
	TriggerSchedule = "schedule"
	TriggerCLI      = "cli"
)

// RecordAPICall records one outbound call. status is the HTTP status code or "error".
func RecordAPICall(endpoint, status string, duration time.Duration) {
	APICallsTotal.WithLabelValues(endpoint, status).Inc()
	APICallDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordSync records a fetch and upsert round
func RecordSync(trigger string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SyncOperationsTotal.WithLabelValues(trigger, status).Inc()
	SyncDuration.WithLabelValues(trigger).Observe(duration.Seconds())
}

func RecordUpserted(n int) {
	TeamsUpsertedTotal.Add(float64(n))
}

func RecordSkipped(reason string) {
	TeamsSkippedTotal.WithLabelValues(reason).Inc()
}
