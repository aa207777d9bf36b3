/*
mw.go - HTTP middleware

PURPOSE:
  Per-IP request rate limiting and short-TTL caching of GET responses.
  Both sit in front of the handlers; neither knows about booking semantics.

RATE LIMITING:
  Token bucket per client IP (golang.org/x/time/rate). Limiters for idle
  IPs are evicted after an hour so the map cannot grow without bound.

CACHING:
  GET responses are cached for a few seconds keyed by URL. Availability and
  stats queries are read-heavy and tolerant of slightly stale answers; every
  write path re-checks under the resource lock anyway.
*/
package api

import (
	"bytes"
	"net"
	"net/http"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// =============================================================================
// RATE LIMITER
// =============================================================================

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter enforces a per-IP token bucket.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go rl.cleanup()
	return rl
}

func (rl *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *IPRateLimiter) cleanup() {
	for range time.Tick(10 * time.Minute) {
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > time.Hour {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware rejects requests over the limit with 429.
func (rl *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.limiterFor(ip).Allow() {
			writeErrorMessage(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// GET CACHE
// =============================================================================

type cachedResponse struct {
	status int
	header http.Header
	body   []byte
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (cw *captureWriter) WriteHeader(status int) {
	cw.status = status
	cw.ResponseWriter.WriteHeader(status)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}

// ResponseCache caches successful GET responses for a short TTL.
type ResponseCache struct {
	cache *gocache.Cache
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{cache: gocache.New(ttl, 2*ttl)}
}

// Middleware serves cached bodies for repeated GETs of the same URL.
func (rc *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			// Writes invalidate everything; the TTL is short enough that a
			// coarse flush beats tracking URL dependencies.
			rc.cache.Flush()
			return
		}

		key := r.URL.RequestURI()
		if v, ok := rc.cache.Get(key); ok {
			cached := v.(cachedResponse)
			for k, vals := range cached.header {
				for _, val := range vals {
					w.Header().Add(k, val)
				}
			}
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(cached.status)
			w.Write(cached.body)
			return
		}

		cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(cw, r)

		if cw.status == http.StatusOK {
			rc.cache.SetDefault(key, cachedResponse{
				status: cw.status,
				header: cw.Header().Clone(),
				body:   cw.body.Bytes(),
			})
		}
	})
}
