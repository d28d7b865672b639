package handlers

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter allows at most limit attempts per key within each window.
// All counters are reset together when the window elapses.
type RateLimiter struct {
	attempts map[string]int
	limit    int
	mutex    sync.Mutex
	window   time.Duration
	stop     chan struct{}
	once     sync.Once
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rateLimiter := &RateLimiter{
		attempts: make(map[string]int),
		limit:    limit,
		window:   window,
		stop:     make(chan struct{}),
	}
	go rateLimiter.cleanup()
	return rateLimiter
}

// reset the attempts map every window duration
func (rateLimiter *RateLimiter) cleanup() {
	ticker := time.NewTicker(rateLimiter.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rateLimiter.mutex.Lock()
			rateLimiter.attempts = make(map[string]int)
			rateLimiter.mutex.Unlock()
		case <-rateLimiter.stop:
			return
		}
	}
}

// Close stops the background reset loop.
func (rateLimiter *RateLimiter) Close() {
	rateLimiter.once.Do(func() { close(rateLimiter.stop) })
}

func (rateLimiter *RateLimiter) Allow(key string) bool {
	rateLimiter.mutex.Lock()
	defer rateLimiter.mutex.Unlock()

	count, exists := rateLimiter.attempts[key]
	if !exists {
		rateLimiter.attempts[key] = 1
		return true
	}

	if count >= rateLimiter.limit {
		return false
	}
	rateLimiter.attempts[key]++
	return true
}

// clientIP is the remote address without its port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// allowAuthAttempt answers 429 and returns false once the client is over its limit.
func (h *Handler) allowAuthAttempt(w http.ResponseWriter, r *http.Request, handler string) bool {
	if h.RateLimiter == nil {
		return true
	}
	ip := clientIP(r)
	if h.RateLimiter.Allow(ip) {
		return true
	}
	h.log(r, handler).WithField("remote_ip", ip).Warn("rate limit exceeded")
	sendError(w, "Too many attempts. Please try again later.", http.StatusTooManyRequests)
	return false
}
