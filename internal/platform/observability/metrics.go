// Package observability exposes the Prometheus metrics of the api gateway and
// the export worker.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Record outcomes counted by momopress_records_total.
const (
	OutcomeKept     = "kept"
	OutcomeFiltered = "filtered"
)

// Refresh statuses counted by momopress_refresh_total.
const (
	RefreshSuccess = "success"
	RefreshFailure = "failure"
)

// Metrics holds every collector, registered in a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	normalizeDuration prometheus.Histogram
	records           *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	refreshes         *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		normalizeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "momopress_normalize_duration_seconds",
			Help:    "Duration of one normalization pass.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		records: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momopress_records_total",
				Help: "Raw records seen by the normalizer, by outcome.",
			},
			[]string{"outcome"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momopress_http_requests_total",
				Help: "HTTP requests served.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "momopress_http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		refreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momopress_refresh_total",
				Help: "Period refreshes, by status.",
			},
			[]string{"status"},
		),
	}
}

// ObserveNormalize records one pass over total raw records of which kept matched the period.
func (m *Metrics) ObserveNormalize(d time.Duration, total, kept int) {
	if m == nil {
		return
	}
	m.normalizeDuration.Observe(d.Seconds())
	m.records.WithLabelValues(OutcomeKept).Add(float64(kept))
	m.records.WithLabelValues(OutcomeFiltered).Add(float64(total - kept))
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) IncRefresh(status string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
