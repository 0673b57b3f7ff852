package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records dispatch outcomes and store size. A nil *Metrics is a no-op.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	todoOperations  *prometheus.CounterVec
	todosStored     prometheus.Gauge
	coldStarts      prometheus.Counter
	rateLimitHits   prometheus.Counter
}

// New creates the collectors and registers them with registry
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todo_request_duration_seconds",
				Help:    "Duration of dispatched requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_requests_total",
				Help: "Total number of dispatched requests",
			},
			[]string{"route", "method", "status"},
		),
		todoOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_operations_total",
				Help: "Store operations by kind and outcome",
			},
			[]string{"operation", "outcome"},
		),
		todosStored: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "todo_records",
				Help: "Number of todo records held in memory",
			},
		),
		coldStarts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "todo_cold_starts_total",
				Help: "Number of execution contexts initialized",
			},
		),
		rateLimitHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "todo_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}

	if registry != nil {
		registry.MustRegister(
			m.requestDuration,
			m.requestTotal,
			m.todoOperations,
			m.todosStored,
			m.coldStarts,
			m.rateLimitHits,
		)
	}

	return m
}

// ObserveRequest records one dispatched request
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	method = methodLabel(method)
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
	m.requestTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// methodLabel keeps the method label set fixed; callers can send any verb.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		http.MethodPatch, http.MethodHead, http.MethodOptions:
		return method
	default:
		return "other"
	}
}

// RecordOperation counts a store operation outcome
func (m *Metrics) RecordOperation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.todoOperations.WithLabelValues(operation, outcome).Inc()
}

// SetTodoCount updates the stored records gauge
func (m *Metrics) SetTodoCount(n int) {
	if m == nil {
		return
	}
	m.todosStored.Set(float64(n))
}

// ColdStart counts an execution context initialization
func (m *Metrics) ColdStart() {
	if m == nil {
		return
	}
	m.coldStarts.Inc()
}

// RateLimited counts a rejected request
func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimitHits.Inc()
}
