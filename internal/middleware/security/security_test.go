package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDetectSuspiciousRequest(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		agent  string
		want   bool
	}{
		{"ledger api", http.MethodGet, "/api/ledger", "Mozilla/5.0", false},
		{"path traversal", http.MethodGet, "/static/../../etc/passwd", "", true},
		{"dotenv scan", http.MethodGet, "/.env", "", true},
		{"eval in query", http.MethodGet, "/api/stays?q=eval(1)", "", true},
		{"scanner agent", http.MethodGet, "/", "sqlmap/1.7", true},
		{"trace method", "TRACE", "/", "", true},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("User-Agent", tt.agent)
			if got := d.DetectSuspiciousRequest(req); got != tt.want {
				t.Errorf("DetectSuspiciousRequest() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := d.GetMetrics().SuspiciousRequests; got != 5 {
		t.Errorf("SuspiciousRequests = %d, want 5", got)
	}
}

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		realIP     string
		want       string
	}{
		{"direct", "203.0.113.9:5555", "", "", "203.0.113.9"},
		{"untrusted proxy ignored", "203.0.113.9:5555", "198.51.100.1", "", "203.0.113.9"},
		{"trusted proxy xff", "10.0.0.2:80", "198.51.100.1, 10.0.0.2", "", "198.51.100.1"},
		{"trusted proxy real ip", "127.0.0.1:80", "", "198.51.100.7", "198.51.100.7"},
		{"invalid forwarded", "192.168.1.1:80", "not-an-ip", "", "192.168.1.1"},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := d.ExtractClientIP(req); got != tt.want {
				t.Errorf("ExtractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
	if d.GetMetrics().InvalidIPAttempts != 1 {
		t.Errorf("InvalidIPAttempts = %d, want 1", d.GetMetrics().InvalidIPAttempts)
	}
}

func TestDetectorMiddlewareBlocksTrace(t *testing.T) {
	d := NewDetector()
	called := false
	h := d.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("TRACE", "/", nil))
	if rr.Code != http.StatusMethodNotAllowed || called {
		t.Fatalf("TRACE not blocked: code=%d called=%v", rr.Code, called)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/.git/config", nil))
	if !called {
		t.Error("suspicious GET should be logged, not blocked")
	}
	if got := d.GetMetrics(); got.BlockedRequests != 1 || got.SuspiciousRequests != 2 {
		t.Errorf("metrics = %+v", got)
	}
}

func TestAddTrustedProxy(t *testing.T) {
	d := NewDetector()
	if err := d.AddTrustedProxy("bogus"); err == nil {
		t.Error("expected error for invalid CIDR")
	}
	if err := d.AddTrustedProxy("203.0.113.0/24"); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.5:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.3")
	if got := d.ExtractClientIP(req); got != "198.51.100.3" {
		t.Errorf("ExtractClientIP() = %q", got)
	}
}

func TestHeadersMiddleware(t *testing.T) {
	h := NewHeadersMiddleware(DefaultHeadersConfig()).Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
	if !strings.Contains(rr.Header().Get("Content-Security-Policy"), "script-src 'self'") {
		t.Errorf("CSP = %q", rr.Header().Get("Content-Security-Policy"))
	}
	if rr.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set on plain HTTP")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Errorf("HSTS = %q", got)
	}
}

func TestStaticAssetMiddleware(t *testing.T) {
	h := StaticAssetMiddleware(3600)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if got := rr.Header().Get("Cache-Control"); got != "public, max-age=3600, immutable" {
		t.Errorf("Cache-Control = %q", got)
	}
}
