package circuitbreaker

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/services/shared/metrics"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDoer struct {
	calls  int
	status int
	err    error
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		StatusCode: s.status,
		Status:     http.StatusText(s.status),
		Body:       io.NopCloser(strings.NewReader(`{}`)),
	}, nil
}

func testConfig() config.CircuitBreaker {
	return config.CircuitBreaker{
		MaxRequests:      1,
		IntervalInSecond: 60,
		TimeoutInSecond:  60,
		FailureThreshold: 2,
		FailureRatio:     0.5,
		MinRequests:      10,
	}
}

func newRequest(t *testing.T) *http.Request {
	req, err := http.NewRequest(http.MethodGet, "http://fhir.test/ServiceRequest/1", nil)
	require.NoError(t, err)
	return req
}

func TestBreakerDoer_PassesThroughSuccess(t *testing.T) {
	stub := &stubDoer{status: http.StatusOK}
	m := metrics.New(prometheus.NewRegistry())
	doer := NewBreakerDoer("fhir", testConfig(), stub, zap.NewNop(), m)

	resp, err := doer.Do(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FhirRequests.WithLabelValues(http.MethodGet, metrics.OutcomeSuccess)))
}

func TestBreakerDoer_ReturnsServerErrorResponseToCaller(t *testing.T) {
	stub := &stubDoer{status: http.StatusBadGateway}
	doer := NewBreakerDoer("fhir", testConfig(), stub, zap.NewNop(), nil)

	resp, err := doer.Do(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestBreakerDoer_OpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubDoer{status: http.StatusInternalServerError}
	m := metrics.New(prometheus.NewRegistry())
	doer := NewBreakerDoer("fhir", testConfig(), stub, zap.NewNop(), m)

	for i := 0; i < 2; i++ {
		_, err := doer.Do(newRequest(t))
		require.NoError(t, err)
	}

	_, err := doer.Do(newRequest(t))
	require.Error(t, err)

	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, http.StatusServiceUnavailable, customErr.StatusCode)
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CircuitBreakerState.WithLabelValues("fhir")))
}

func TestBreakerDoer_TransportErrorIsReturned(t *testing.T) {
	stub := &stubDoer{err: errors.New("connection refused")}
	doer := NewBreakerDoer("fhir", testConfig(), stub, nil, nil)

	_, err := doer.Do(newRequest(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestBreakerDoer_ClientErrorsDoNotTrip(t *testing.T) {
	stub := &stubDoer{status: http.StatusNotFound}
	doer := NewBreakerDoer("fhir", testConfig(), stub, zap.NewNop(), nil)

	for i := 0; i < 5; i++ {
		resp, err := doer.Do(newRequest(t))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
	assert.Equal(t, 5, stub.calls)
}
