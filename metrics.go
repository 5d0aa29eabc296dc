package dondominio

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records per-action call counts and latencies.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the client collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		calls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dondominio_calls_total",
			Help: "Total API calls by action and outcome.",
		}, []string{"action", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dondominio_call_duration_seconds",
			Help:    "API call duration in seconds, validation failures excluded.",
			Buckets: prometheus.DefBuckets,
		}, []string{"action"}),
	}
}

// Call outcomes used as the "outcome" label.
const (
	outcomeOK         = "ok"
	outcomeValidation = "validation_error"
	outcomeAPI        = "api_error"
	outcomeTransport  = "transport_error"
	outcomeMalformed  = "malformed_response"
)

func (m *Metrics) observe(action string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := outcomeOf(err)
	m.calls.WithLabelValues(action, outcome).Inc()
	if outcome != outcomeValidation {
		m.duration.WithLabelValues(action).Observe(d.Seconds())
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrValidation):
		return outcomeValidation
	case errors.Is(err, ErrTransport):
		return outcomeTransport
	case errors.Is(err, ErrMalformedResponse):
		return outcomeMalformed
	default:
		return outcomeAPI
	}
}
