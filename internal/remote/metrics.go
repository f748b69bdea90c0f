package remote

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records remote call outcomes.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers remote call collectors on registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopdesk_remote_requests_total",
			Help: "Remote backend calls by resource, operation and outcome.",
		}, []string{"resource", "op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shopdesk_remote_request_duration_seconds",
			Help:    "Latency of remote backend calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource", "op"}),
	}
	if registerer != nil {
		registerer.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(resource, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
	}
	m.requests.WithLabelValues(resource, op, outcome).Inc()
	m.duration.WithLabelValues(resource, op).Observe(time.Since(start).Seconds())
}
