package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Buckets idle longer than visitorTTL are swept so the table doesn't grow
// with one entry per client ever seen.
const (
	visitorTTL    = 10 * time.Minute
	sweepInterval = time.Minute
)

// ipLimiter keeps one token bucket per client IP.
type ipLimiter struct {
	mu    sync.Mutex
	seen  map[string]*bucket
	rps   rate.Limit
	burst int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	l := &ipLimiter{
		seen:  make(map[string]*bucket),
		rps:   rate.Limit(rps),
		burst: burst,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.seen[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.seen[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

func (l *ipLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		for ip, b := range l.seen {
			if time.Since(b.lastSeen) > visitorTTL {
				delete(l.seen, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit returns middleware that throttles requests per client IP. It is
// mounted on the public auth endpoints as transport hardening; it keeps no
// per-account state and rejects with a generic 429.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := newIPLimiter(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientIP(r)) {
				writeEnvelope(w, http.StatusTooManyRequests, errEnvelope{
					Message: "too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
