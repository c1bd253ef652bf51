package middlewares

import (
	"net/http"
	"time"

	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/go-chi/httprate"
)

// GlobalRateLimit caps every client at App.MaxRequests per second.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			m.ErrorHandler.Handle(w, r, exceptions.ErrTooManyRequests(clientIP(r)))
		}),
	)
}

// SubmissionRateLimit guards the POST routes with the blocking per-IP limiter.
func (m *Middlewares) SubmissionRateLimit() func(next http.Handler) http.Handler {
	limiter := NewRateLimiter(
		m.InternalConfig.App.SubmitRequestsPerMinute,
		time.Minute,
		time.Duration(m.InternalConfig.App.SubmitBlockTimeInSecond)*time.Second,
		m.Log,
		m.ErrorHandler,
	)
	return limiter.Limit
}
