// Package circuitbreaker wraps the FHIR server transport with sony/gobreaker.
package circuitbreaker

import (
	"errors"
	"net/http"
	"time"

	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/app/services/shared/metrics"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// upstreamError marks a 5xx response so the breaker counts it as a failure
// while the caller still receives the response body.
type upstreamError struct {
	resp *http.Response
}

func (e *upstreamError) Error() string {
	return "upstream responded with " + e.resp.Status
}

type breakerDoer struct {
	cb      *gobreaker.CircuitBreaker
	client  contracts.HTTPDoer
	name    string
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewBreakerDoer returns an HTTPDoer that sends every request through client
// guarded by a circuit breaker named name. metrics may be nil.
func NewBreakerDoer(name string, cfg config.CircuitBreaker, client contracts.HTTPDoer, logger *zap.Logger, m *metrics.Metrics) contracts.HTTPDoer {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &breakerDoer{
		client:  client,
		name:    name,
		log:     logger,
		metrics: m,
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.IntervalInSecond) * time.Second,
		Timeout:     time.Duration(cfg.TimeoutInSecond) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return counts.ConsecutiveFailures >= cfg.FailureThreshold
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			d.onStateChange(from, to)
		},
	}
	d.cb = gobreaker.NewCircuitBreaker(settings)
	d.setStateGauge(gobreaker.StateClosed)

	return d
}

func (d *breakerDoer) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	result, err := d.cb.Execute(func() (interface{}, error) {
		resp, err := d.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= constvars.StatusInternalServerError {
			return nil, &upstreamError{resp: resp}
		}
		return resp, nil
	})
	d.observe(req.Method, start, err)

	if err != nil {
		var upstreamErr *upstreamError
		if errors.As(err, &upstreamErr) {
			return upstreamErr.resp, nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			d.log.Warn("breakerDoer.Do rejected request",
				zap.String(constvars.LoggingBreakerNameKey, d.name),
				zap.String(constvars.LoggingFhirUrlKey, req.URL.String()),
				zap.Error(err),
			)
			return nil, exceptions.ErrCircuitOpen(err, d.name)
		}
		return nil, err
	}

	return result.(*http.Response), nil
}

func (d *breakerDoer) observe(method string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = metrics.OutcomeOpen
		}
	}
	d.metrics.FhirRequests.WithLabelValues(method, outcome).Inc()
	d.metrics.FhirRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func (d *breakerDoer) onStateChange(from, to gobreaker.State) {
	d.log.Warn("circuit breaker state changed",
		zap.String(constvars.LoggingBreakerNameKey, d.name),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
	d.setStateGauge(to)
}

func (d *breakerDoer) setStateGauge(state gobreaker.State) {
	if d.metrics == nil {
		return
	}

	var value float64
	switch state {
	case gobreaker.StateOpen:
		value = 1
	case gobreaker.StateHalfOpen:
		value = 2
	}
	d.metrics.CircuitBreakerState.WithLabelValues(d.name).Set(value)
}
