// Package metrics exposes Prometheus collectors for the discovery service.
//
// Metrics are served in text format at /metrics:
//   - discovery_requests_total{stage}: discovery requests by producing stage
//   - discovery_duration_seconds: engine time per discovery request
//   - suggestion_requests_total{kind}: autocomplete requests by branch
//   - catalog_fetch_total{result}: catalog snapshot loads (hit, fetched, stale, error)
//   - api_requests_total{method,endpoint,status_code}
//   - api_rate_limit_hits_total{endpoint}
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DiscoveryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_requests_total",
			Help: "Total number of discovery requests by the stage that produced the result",
		},
		[]string{"stage"},
	)

	DiscoveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_duration_seconds",
			Help:    "Time spent ranking, filtering and sorting one discovery request",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	SuggestionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_requests_total",
			Help: "Total number of autocomplete requests by suggestion branch",
		},
		[]string{"kind"},
	)

	CatalogFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetch_total",
			Help: "Catalog snapshot loads by result",
		},
		[]string{"result"}, // "hit", "fetched", "stale", "error"
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordDiscovery records one discovery request
func RecordDiscovery(stage string, duration time.Duration) {
	DiscoveryRequests.WithLabelValues(stage).Inc()
	DiscoveryDuration.Observe(duration.Seconds())
}

// RecordSuggestion records one autocomplete request
func RecordSuggestion(kind string) {
	SuggestionRequests.WithLabelValues(kind).Inc()
}

// RecordCatalogFetch records a catalog snapshot load
func RecordCatalogFetch(result string) {
	CatalogFetches.WithLabelValues(result).Inc()
}

// RecordAPIRequest records a completed HTTP request
func RecordAPIRequest(method, endpoint string, status int) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}
