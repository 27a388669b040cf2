package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultClientIdle is how long a client may stay quiet before its
// limiter is dropped.
const DefaultClientIdle = 10 * time.Minute

type clientEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// ClientLimiter rate-limits per client IP.
type ClientLimiter struct {
	mu        sync.Mutex
	m         map[string]*clientEntry
	r         rate.Limit
	b         int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewClientLimiter allows reqPerSec per client; reqPerSec <= 0 disables limiting.
func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	r := rate.Limit(reqPerSec)
	if reqPerSec <= 0 {
		r = rate.Inf
	}
	return &ClientLimiter{
		m:    make(map[string]*clientEntry),
		r:    r,
		b:    burst,
		idle: DefaultClientIdle,
		now:  time.Now,
	}
}

func (cl *ClientLimiter) limiterFor(client string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if now.Sub(cl.lastSweep) >= cl.idle {
		cl.sweepLocked(now)
	}

	if e, ok := cl.m[client]; ok {
		e.seen = now
		return e.lim
	}
	e := &clientEntry{lim: rate.NewLimiter(cl.r, cl.b), seen: now}
	cl.m[client] = e
	return e.lim
}

// sweepLocked drops clients idle for longer than cl.idle. Caller holds mu.
func (cl *ClientLimiter) sweepLocked(now time.Time) {
	for k, e := range cl.m {
		if now.Sub(e.seen) > cl.idle {
			delete(cl.m, k)
		}
	}
	cl.lastSweep = now
}

// Clients returns the number of tracked clients.
func (cl *ClientLimiter) Clients() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.m)
}

func (cl *ClientLimiter) Allow(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return cl.limiterFor(host).Allow()
}

// Limit rejects requests over the client's budget with 429.
func (cl *ClientLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cl.Allow(r) {
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, CodeRateLimited, "too many requests")
			return
		}
		next(w, r)
	}
}
