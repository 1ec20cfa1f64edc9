package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SaleMetrics records the outcome of sale posting attempts.
type SaleMetrics struct {
	duration *prometheus.HistogramVec
	posted   *prometheus.CounterVec
	failed   *prometheus.CounterVec
}

// NewSaleMetrics registers the sale posting metrics on the provided registerer.
func NewSaleMetrics(reg prometheus.Registerer) *SaleMetrics {
	if reg == nil {
		return &SaleMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sale_post_duration_seconds",
		Help:    "Duration of sale posting transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	posted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_posted_total",
		Help: "Committed sales.",
	}, []string{"tenant"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_post_failures_total",
		Help: "Rejected or aborted sale postings by error code.",
	}, []string{"code"})
	reg.MustRegister(duration, posted, failed)
	return &SaleMetrics{
		duration: duration,
		posted:   posted,
		failed:   failed,
	}
}

// ObserveDuration records how long a posting attempt took.
func (m *SaleMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncPosted increments the committed-sale counter for the tenant.
func (m *SaleMetrics) IncPosted(tenant string) {
	if m == nil || m.posted == nil {
		return
	}
	m.posted.WithLabelValues(normalizeLabel(tenant)).Inc()
}

// IncFailed increments the failure counter for the given error code.
func (m *SaleMetrics) IncFailed(code string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
