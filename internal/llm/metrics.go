package llm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsObserver records LLM calls and advisory outcomes as Prometheus metrics.
type MetricsObserver struct {
	calls      *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	advisories *prometheus.CounterVec
}

// NewMetricsObserver registers the compass LLM metrics with reg.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	factory := promauto.With(reg)
	return &MetricsObserver{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compass_llm_calls_total",
				Help: "Total number of text-generation calls",
			},
			[]string{"task", "provider", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "compass_llm_call_duration_seconds",
				Help:    "Duration of text-generation calls in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"task", "provider"},
		),
		advisories: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compass_advisories_total",
				Help: "Total number of advisory results by outcome",
			},
			[]string{"task", "outcome"},
		),
	}
}

func (m *MetricsObserver) OnCallComplete(event LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
	}
	m.calls.WithLabelValues(string(event.Task), string(event.Provider), status).Inc()
	m.latency.WithLabelValues(string(event.Task), string(event.Provider)).
		Observe((time.Duration(event.LatencyMs) * time.Millisecond).Seconds())
}

func (m *MetricsObserver) OnAdvisoryComplete(event AdvisoryEvent) {
	outcome := "generated"
	if event.Degraded {
		outcome = "fallback"
	}
	m.advisories.WithLabelValues(string(event.Task), outcome).Inc()
}
