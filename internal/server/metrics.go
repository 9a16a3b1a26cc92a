package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors. Each Metrics owns its
// registry, so several servers (or tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter
	evaluations    *prometheus.CounterVec
	evalDuration   *prometheus.HistogramVec
	operandDigits  prometheus.Histogram
}

// NewMetrics creates and registers the collectors, plus the Go runtime and
// process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bigcalc_active_requests",
			Help: "Number of HTTP requests being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bigcalc_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_evaluations_total",
			Help: "Evaluations by operator and outcome.",
		}, []string{"op", "status"}),
		evalDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_evaluation_duration_seconds",
			Help:    "Wall time of evaluations by operator.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"op"}),
		operandDigits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bigcalc_operand_digits",
			Help:    "Digit count of the longer operand of each evaluation.",
			Buckets: prometheus.ExponentialBuckets(1, 10, 8),
		}),
	}
	reg.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		m.evaluations,
		m.evalDuration,
		m.operandDigits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks a request as started.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveEvaluation records one evaluation. status is "ok" or an error
// class such as "division_by_zero".
func (m *Metrics) ObserveEvaluation(op, status string, digits int, d time.Duration) {
	m.evaluations.WithLabelValues(op, status).Inc()
	m.evalDuration.WithLabelValues(op).Observe(d.Seconds())
	m.operandDigits.Observe(float64(digits))
}

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
