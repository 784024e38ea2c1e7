// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the backend client and the sandbox report into.
type Recorder interface {
	ObserveBackendCall(endpoint string, status int, duration time.Duration)
	RecordBreakerState(name, state string)
	ObserveHTTPRequest(route, method string, status int, duration time.Duration)
}

type Collector struct {
	backendCalls   *prometheus.CounterVec
	backendLatency *prometheus.HistogramVec
	breakerChanges *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_backend_requests_total",
			Help: "Backend requests by endpoint and status code.",
		}, []string{"endpoint", "status_code"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_backend_latency_seconds",
			Help:    "Backend request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		breakerChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_breaker_transitions_total",
			Help: "Circuit breaker state transitions.",
		}, []string{"name", "state"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_sandbox_requests_total",
			Help: "Sandbox requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_sandbox_latency_seconds",
			Help:    "Sandbox request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		c.backendCalls,
		c.backendLatency,
		c.breakerChanges,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

// ObserveBackendCall records one backend round trip. Status 0 means the
// request never got an answer.
func (c *Collector) ObserveBackendCall(endpoint string, status int, duration time.Duration) {
	c.backendCalls.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	c.backendLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (c *Collector) RecordBreakerState(name, state string) {
	c.breakerChanges.WithLabelValues(name, state).Inc()
}

func (c *Collector) ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler serves the registry for Prometheus scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveBackendCall(string, int, time.Duration)          {}
func (Nop) RecordBreakerState(string, string)                      {}
func (Nop) ObserveHTTPRequest(string, string, int, time.Duration) {}
