// Package ratelimit throttles mutating requests per client IP.
package ratelimit

import (
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

const (
	window   = time.Minute
	staleAge = 10 * time.Minute
)

// Limiter counts requests per client in fixed one-minute windows.
type Limiter struct {
	limit    int
	methods  []string
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*clientWindow
	hits    atomic.Int64

	done     chan struct{}
	stopOnce sync.Once
}

type clientWindow struct {
	start time.Time
	last  time.Time
	count int
}

// Config holds rate limiter configuration. Methods restricts limiting to
// the listed HTTP methods; empty limits every request.
type Config struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
	Methods           []string
}

// DefaultConfig limits ledger and chat writes to 60 per minute.
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 60,
		CleanupInterval:   5 * time.Minute,
		Methods:           []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}
}

// NewLimiter starts the limiter's cleanup goroutine. Call Stop to release it.
func NewLimiter(cfg Config) *Limiter {
	def := DefaultConfig()
	rl := &Limiter{
		limit:    positiveOr(cfg.RequestsPerMinute, def.RequestsPerMinute),
		methods:  cfg.Methods,
		interval: positiveOr(cfg.CleanupInterval, def.CleanupInterval),
		now:      time.Now,
		windows:  make(map[string]*clientWindow),
		done:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func positiveOr[T int | time.Duration](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}

// Allow records one request for clientIP and reports whether it fits in
// the client's current window.
func (rl *Limiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[clientIP]
	if !ok || now.Sub(w.start) >= window {
		rl.windows[clientIP] = &clientWindow{start: now, last: now, count: 1}
		return true
	}

	w.last = now
	w.count++
	if w.count > rl.limit {
		rl.hits.Add(1)
		return false
	}
	return true
}

// Applies reports whether requests with the given method are limited.
func (rl *Limiter) Applies(method string) bool {
	return len(rl.methods) == 0 || slices.Contains(rl.methods, method)
}

func (rl *Limiter) sweepLoop() {
	t := time.NewTicker(rl.interval)
	defer t.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-t.C:
			rl.cleanupStaleEntries()
		}
	}
}

// cleanupStaleEntries forgets clients idle for longer than staleAge.
func (rl *Limiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-staleAge)
	for ip, w := range rl.windows {
		if w.last.Before(cutoff) {
			delete(rl.windows, ip)
		}
	}
}

func (rl *Limiter) ActiveClients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *Limiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

type Metrics struct {
	TotalHits   int64
	ClientCount int64
}

func (rl *Limiter) GetMetrics() Metrics {
	return Metrics{
		TotalHits:   rl.hits.Load(),
		ClientCount: int64(rl.ActiveClients()),
	}
}

// Middleware rejects limited requests through onLimit, or a plain 429 when
// onLimit is nil. Methods the limiter does not apply to pass through.
func (rl *Limiter) Middleware(extractIP func(*http.Request) string, onLimit func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	if onLimit == nil {
		onLimit = func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.Applies(r.Method) && !rl.Allow(extractIP(r)) {
				onLimit(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
