package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long an IP's limiter survives without requests
const idleLimiterTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter manages rate limiting per IP address
type IPRateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	cleanup  time.Duration
	proxies  TrustedProxies
	stop     chan struct{}
	stopOnce sync.Once
}

// NewIPRateLimiter creates a new IP-based rate limiter
// r: requests per second, b: burst size
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	limiter := &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		cleanup:  5 * time.Minute,
		stop:     make(chan struct{}),
	}

	// Cleanup old entries periodically
	go limiter.cleanupLoop()

	return limiter
}

// GetLimiter returns the rate limiter for the given IP
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()

	return v.limiter
}

// Allow checks if the request from the given IP is allowed
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.GetLimiter(ip).Allow()
}

// Close stops the cleanup goroutine
func (l *IPRateLimiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// cleanupLoop removes idle limiters to prevent memory leaks
func (l *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-idleLimiterTTL))
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops limiters not used since cutoff
func (l *IPRateLimiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
		}
	}
}

// RateLimitFunc wraps a HandlerFunc with rate limiting
func RateLimitFunc(limiter *IPRateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(limiter.proxies.ClientIP(r)) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// Limiters groups the per-purpose rate limiters of the server
type Limiters struct {
	// API covers JSON endpoints
	API *IPRateLimiter

	// Auth covers form submission
	Auth *IPRateLimiter

	// WebSocket covers notice channel handshakes
	WebSocket *IPRateLimiter
}

// NewLimiters creates the limiters with a burst of twice each rate.
// Clients behind one of proxies are keyed by their forwarded address.
func NewLimiters(api, auth, ws rate.Limit, proxies TrustedProxies) *Limiters {
	l := &Limiters{
		API:       NewIPRateLimiter(api, burstFor(api)),
		Auth:      NewIPRateLimiter(auth, burstFor(auth)),
		WebSocket: NewIPRateLimiter(ws, burstFor(ws)),
	}
	for _, lim := range []*IPRateLimiter{l.API, l.Auth, l.WebSocket} {
		lim.proxies = proxies
	}
	return l
}

func burstFor(r rate.Limit) int {
	if b := int(2 * r); b > 1 {
		return b
	}
	return 1
}

// Close stops every limiter
func (l *Limiters) Close() {
	l.API.Close()
	l.Auth.Close()
	l.WebSocket.Close()
}
