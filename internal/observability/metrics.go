package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	httpRequestsTotal  *prometheus.CounterVec
	httpRequestSeconds *prometheus.HistogramVec
	httpErrorsTotal    *prometheus.CounterVec
	workerCyclesTotal  *prometheus.CounterVec
	workerCycleSeconds *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors. HTTP metrics are
// partitioned by surface (admin vs candidate session) so the two traffic
// profiles can be alerted on separately.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxhire",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by surface, route and status.",
		}, []string{"surface", "method", "route", "status"})

		httpRequestSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "voxhire",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by surface and route.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"surface", "method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxhire",
			Name:      "http_errors_total",
			Help:      "HTTP error responses, by surface, route and status.",
		}, []string{"surface", "method", "route", "status"})

		workerCyclesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxhire",
			Name:      "worker_cycles_total",
			Help:      "Background worker cycles, by worker and outcome.",
		}, []string{"worker", "outcome"})

		workerCycleSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "voxhire",
			Name:      "worker_cycle_duration_seconds",
			Help:      "Background worker cycle duration, by worker.",
			Buckets:   []float64{0.05, 0.25, 1, 5, 15, 60, 180},
		}, []string{"worker"})

		prometheus.MustRegister(httpRequestsTotal, httpRequestSeconds, httpErrorsTotal, workerCyclesTotal, workerCycleSeconds)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpRequestSeconds
}

// HTTPErrors exposes the error response counter.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// WorkerCycles exposes the counter for worker cycle outcomes.
func WorkerCycles() *prometheus.CounterVec {
	RegisterMetrics()
	return workerCyclesTotal
}

// WorkerCycleDuration exposes the histogram for worker cycle durations.
func WorkerCycleDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return workerCycleSeconds
}
