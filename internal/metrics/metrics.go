package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledes_chat_requests_total",
			Help: "Chat turns handled, by outcome",
		},
		[]string{"outcome"},
	)

	ModelCallDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ledes_model_call_duration_seconds",
			Help:    "Latency of the model endpoint call",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
	)

	StoreQueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledes_store_query_failures_total",
			Help: "Record store reads that failed and were degraded to empty",
		},
		[]string{"collection"},
	)

	IntakeSignals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ledes_intake_signals_total",
			Help: "Responses that asked the client to start the entity intake flow",
		},
	)
)

// Chat outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeNotConfigured = "not_configured"
	OutcomeUpstream      = "upstream_failed"
	OutcomeInternal      = "internal"
)
