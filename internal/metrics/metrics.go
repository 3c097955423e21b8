// Package metrics exposes Prometheus collectors for the dashboard gateway.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequestsTotal      *prometheus.CounterVec
	upstreamRequestDurationSec *prometheus.HistogramVec
	cacheEventsTotal           *prometheus.CounterVec
	pollCyclesTotal            *prometheus.CounterVec
	activeWatchers             prometheus.Gauge
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		upstreamRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_upstream_requests_total",
				Help: "Total requests issued to the analysis backend, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		upstreamRequestDurationSec = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_upstream_request_duration_seconds",
				Help:    "Histogram of analysis backend call latencies, labeled by resource.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"resource"},
		)

		cacheEventsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_cache_events_total",
				Help: "Cache lookups labeled by resource and result (hit, miss, invalidate, stale_drop).",
			},
			[]string{"resource", "result"},
		)

		pollCyclesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_poll_cycles_total",
				Help: "Scan poll cycles executed, labeled by observed status.",
			},
			[]string{"status"},
		)

		activeWatchers = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gateway_active_scan_watchers",
				Help: "Number of scan watchers currently polling.",
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstream records one backend call.
func ObserveUpstream(method, resource string, code int, duration time.Duration) {
	upstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	upstreamRequestDurationSec.WithLabelValues(resource).Observe(duration.Seconds())
}

// ObserveCache records a cache lookup outcome.
func ObserveCache(resource, result string) {
	cacheEventsTotal.WithLabelValues(resource, result).Inc()
}

// ObservePollCycle increments the poll counter for the observed scan status.
func ObservePollCycle(status string) {
	pollCyclesTotal.WithLabelValues(status).Inc()
}

// IncActiveWatchers increments the active watcher gauge.
func IncActiveWatchers() {
	activeWatchers.Inc()
}

// DecActiveWatchers decrements the active watcher gauge.
func DecActiveWatchers() {
	activeWatchers.Dec()
}

// ObserveHTTPRequest increments the HTTP server metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
