// Package metrics provides Prometheus metrics for the imaging request service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeOpen    = "circuit_open"
)

// Metrics holds all application metrics
type Metrics struct {
	ServiceRequestsCreated prometheus.Counter
	ServiceRequestsFailed  *prometheus.CounterVec
	ValidationFailures     prometheus.Counter
	FhirRequests           *prometheus.CounterVec
	FhirRequestDuration    *prometheus.HistogramVec
	HTTPRequests           *prometheus.CounterVec
	CircuitBreakerState    *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// New creates all metrics and registers them with registerer. Passing nil
// registers with the process-wide default registry.
func New(registerer prometheus.Registerer) *Metrics {
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	} else if g, ok := registerer.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &Metrics{
		ServiceRequestsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "service_requests_created_total",
			Help: "Total imaging service requests persisted",
		}),
		ServiceRequestsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "service_requests_failed_total",
			Help: "Total imaging service request submissions that failed",
		}, []string{"status_code"}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "service_request_validation_failures_total",
			Help: "Total submissions rejected by validation",
		}),
		FhirRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fhir_requests_total",
			Help: "Total requests sent to the FHIR server",
		}, []string{"method", "outcome"}),
		FhirRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fhir_request_duration_seconds",
			Help:    "FHIR server request duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests handled",
		}, []string{"method", "status_code"}),
		CircuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		}, []string{"name"}),
		gatherer: gatherer,
	}

	registerer.MustRegister(
		m.ServiceRequestsCreated,
		m.ServiceRequestsFailed,
		m.ValidationFailures,
		m.FhirRequests,
		m.FhirRequestDuration,
		m.HTTPRequests,
		m.CircuitBreakerState,
	)

	return m
}

// Handler returns the Prometheus HTTP handler for the registry the metrics live in.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
