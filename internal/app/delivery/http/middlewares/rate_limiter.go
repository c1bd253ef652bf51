package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Ardenexal/imaging-request/internal/app/delivery/http/handlers"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles submissions per client IP. A client that exceeds its
// budget is blocked outright for blockTime. Clients idle for a whole period are
// swept, since their bucket would be full again anyway.
type RateLimiter struct {
	limiters     map[string]*clientLimiter
	blocked      map[string]time.Time
	lastSweep    time.Time
	mu           sync.Mutex
	requests     int
	per          time.Duration
	blockTime    time.Duration
	log          *zap.Logger
	errorHandler *handlers.ErrorHandler
	now          func() time.Time
}

func NewRateLimiter(requests int, per, blockTime time.Duration, logger *zap.Logger, errorHandler *handlers.ErrorHandler) *RateLimiter {
	if requests < 1 {
		requests = 1
	}
	return &RateLimiter{
		limiters:     make(map[string]*clientLimiter),
		blocked:      make(map[string]time.Time),
		requests:     requests,
		per:          per,
		blockTime:    blockTime,
		log:          logger,
		errorHandler: errorHandler,
		now:          time.Now,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip := clientIP(req)

		if !r.allow(ip) {
			r.log.Warn("RateLimiter.Limit blocked request",
				zap.String(constvars.LoggingRemoteAddrKey, ip),
				zap.String(constvars.LoggingEndpointKey, req.URL.Path),
			)
			r.errorHandler.Handle(w, req, exceptions.ErrTooManyRequests(ip))
			return
		}

		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.per {
		r.sweep(now)
	}

	if blockedUntil, found := r.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return false
		}
		delete(r.blocked, ip)
		delete(r.limiters, ip)
	}

	client, exists := r.limiters[ip]
	if !exists {
		// refill one token every per/requests so the budget is requests per period
		client = &clientLimiter{limiter: rate.NewLimiter(rate.Every(r.per/time.Duration(r.requests)), r.requests)}
		r.limiters[ip] = client
	}
	client.lastSeen = now

	if !client.limiter.AllowN(now, 1) {
		r.blocked[ip] = now.Add(r.blockTime)
		return false
	}
	return true
}

// sweep must be called with mu held.
func (r *RateLimiter) sweep(now time.Time) {
	for ip, blockedUntil := range r.blocked {
		if !now.Before(blockedUntil) {
			delete(r.blocked, ip)
			delete(r.limiters, ip)
		}
	}
	for ip, client := range r.limiters {
		if _, isBlocked := r.blocked[ip]; isBlocked {
			continue
		}
		if now.Sub(client.lastSeen) >= r.per {
			delete(r.limiters, ip)
		}
	}
	r.lastSweep = now
}

func clientIP(req *http.Request) string {
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return ip
}
