package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	IntentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_intents_total",
		Help: "Classified intents per chat turn",
	}, []string{"intent"})

	GuardrailActivationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_guardrail_activations_total",
		Help: "Safety guardrail activations by rule",
	}, []string{"rule"})

	ResponseLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "concierge_response_latency_seconds",
		Help:    "End-to-end chat turn latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"intent"})

	// Infrastructure metrics
	ModelLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "concierge_model_latency_seconds",
		Help:    "Chat model completion latency",
		Buckets: prometheus.DefBuckets,
	})

	CalendarErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "concierge_calendar_errors_total",
		Help: "Failed calendar service calls",
	})

	KnowledgeSearchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "concierge_knowledge_search_latency_seconds",
		Help:    "Knowledge base search latency",
		Buckets: prometheus.DefBuckets,
	})
)

func RecordIntent(intent string) {
	IntentsTotal.WithLabelValues(intent).Inc()
}

func RecordGuardrail(rule string) {
	GuardrailActivationsTotal.WithLabelValues(rule).Inc()
}

// ResponseTimer measures one chat turn.
type ResponseTimer struct {
	start time.Time
}

func StartResponseTimer() *ResponseTimer {
	return &ResponseTimer{start: time.Now()}
}

func (t *ResponseTimer) Observe(intent string) {
	ResponseLatency.WithLabelValues(intent).Observe(time.Since(t.start).Seconds())
}
