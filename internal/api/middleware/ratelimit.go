package middleware

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles requests with one token bucket per caller.
// Authenticated requests are keyed by fid so users behind a shared NAT do
// not throttle each other; anonymous requests fall back to the client IP.
// Mounted after RequireAuth the fid key applies, mounted globally it
// degrades to IP keying.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*callerBucket
	limit   rate.Limit
	burst   int
}

type callerBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows `requests` per `window` sustained per caller, with
// bursts up to the full window allowance.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*callerBucket),
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
	}
	go rl.evictIdle(window)
	return rl
}

// Middleware rejects over-limit requests with 429 before they reach the
// handler chain.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := callerKey(r)
		if !rl.bucket(key).Allow() {
			log.Printf("[RATE-LIMIT] Throttled %s %s for %s", r.Method, r.URL.Path, key)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bucket returns the caller's limiter, creating it on first sight.
func (rl *RateLimiter) bucket(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &callerBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

// evictIdle drops buckets not seen for a full window, so one-off callers
// do not accumulate.
func (rl *RateLimiter) evictIdle(window time.Duration) {
	ticker := time.NewTicker(window)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-window)
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// callerKey prefers the authenticated fid over the network address.
func callerKey(r *http.Request) string {
	if fid := GetUserFID(r); fid != 0 {
		return fmt.Sprintf("fid:%d", fid)
	}
	return "ip:" + clientIP(r)
}

// clientIP resolves the originating address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the original client when behind a trusted proxy.
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
