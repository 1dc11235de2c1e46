// Package trace tags each request with an ID and writes the access log.
package trace

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"viagens/internal/log"
)

// RequestIDHeader carries a caller-supplied ID in, and the assigned ID out.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 64

type requestIDKey struct{}

type Middleware struct {
	extractIP func(*http.Request) string
	logger    *log.StructuredLogger

	requests   atomic.Int64
	failures   atomic.Int64
	totalMicro atomic.Int64
}

// Metrics is a point-in-time copy of the request counters.
type Metrics struct {
	TotalRequests       int64
	ServerErrors        int64
	AverageResponseTime int64 // microseconds
}

// NewMiddleware builds the tracer. extractIP may be nil; a nil logger uses
// the process default.
func NewMiddleware(extractIP func(*http.Request) string, logger *log.Logger) *Middleware {
	if logger == nil {
		logger = log.Default()
	}
	if extractIP == nil {
		extractIP = func(*http.Request) string { return "" }
	}
	return &Middleware{
		extractIP: extractIP,
		logger:    log.NewStructuredLogger(logger.WithComponent(log.ComponentTrace)),
	}
}

func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := m.extractIP(r)

		id := r.Header.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = GenerateRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		r = r.WithContext(ctx)
		w.Header().Set(RequestIDHeader, id)

		m.logger.LogHTTPStart(ctx, r, clientIP)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		m.requests.Add(1)
		m.totalMicro.Add(elapsed.Microseconds())
		if rec.status >= http.StatusInternalServerError {
			m.failures.Add(1)
		}
		m.logger.LogHTTPEnd(ctx, r, rec.status, elapsed.Milliseconds(), clientIP)
	})
}

// validRequestID accepts short IDs made of URL-safe characters, so caller
// IDs cannot smuggle line breaks into the log.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	return !strings.ContainsFunc(id, func(r rune) bool {
		return !(r == '-' || r == '_' || r == '.' ||
			'0' <= r && r <= '9' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z')
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.written {
		rec.status = code
		rec.written = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	rec.written = true
	return rec.ResponseWriter.Write(b)
}

func (rec *statusRecorder) Unwrap() http.ResponseWriter { return rec.ResponseWriter }

// GenerateRequestID returns "req_" followed by 16 random hex digits.
func GenerateRequestID() string {
	u := uuid.New()
	return "req_" + strings.ReplaceAll(u.String(), "-", "")[:16]
}

// GetRequestID returns the ID assigned by Middleware, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID adapts GetRequestID for log.RequestIDMiddleware.
func RequestID(r *http.Request) string {
	return GetRequestID(r.Context())
}

func (m *Middleware) GetMetrics() Metrics {
	out := Metrics{
		TotalRequests: m.requests.Load(),
		ServerErrors:  m.failures.Load(),
	}
	if out.TotalRequests > 0 {
		out.AverageResponseTime = m.totalMicro.Load() / out.TotalRequests
	}
	return out
}
