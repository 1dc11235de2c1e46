// Package security flags probing traffic and sets response hardening
// headers.
package security

import (
	"fmt"
	"net/http"
	"net/netip"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"viagens/internal/log"
)

type DetectionMetrics struct {
	SuspiciousRequests int64
	InvalidIPAttempts  int64
	BlockedRequests    int64
}

// rule matches one kind of probe. needles are compared lowercased.
type rule struct {
	reason  string
	field   func(*http.Request) string
	needles []string
}

var rules = []rule{
	{"path probe", func(r *http.Request) string { return r.URL.Path }, []string{
		"../", "..\\", "/.env", "/.git", "/.ssh", "wp-admin", "phpmyadmin", ".php", "etc/passwd", "cmd.exe",
	}},
	{"query injection", func(r *http.Request) string { return r.URL.RawQuery }, []string{
		"../", "eval(", "javascript:", "<script", "union select", "etc/passwd",
	}},
	{"scanner agent", func(r *http.Request) string { return r.UserAgent() }, []string{
		"sqlmap", "nmap", "nikto", "gobuster", "dirb", "scanner",
	}},
}

// diagnostic methods are never served
var blockedMethods = []string{http.MethodTrace, http.MethodConnect, "TRACK", "DEBUG"}

const (
	maxURLLength = 2048
	maxProxyHops = 6
)

// Detector flags suspicious requests and resolves client addresses
// behind trusted proxies.
type Detector struct {
	suspicious atomic.Int64
	invalidIP  atomic.Int64
	blocked    atomic.Int64

	mu      sync.RWMutex
	proxies []netip.Prefix
}

// NewDetector trusts loopback and private networks as proxies.
func NewDetector() *Detector {
	return &Detector{proxies: []netip.Prefix{
		netip.MustParsePrefix("127.0.0.0/8"),
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("172.16.0.0/12"),
		netip.MustParsePrefix("192.168.0.0/16"),
		netip.MustParsePrefix("::1/128"),
	}}
}

func (d *Detector) AddTrustedProxy(cidr string) error {
	p, err := netip.ParsePrefix(cidr)
	if err != nil {
		return fmt.Errorf("invalid CIDR %s: %w", cidr, err)
	}
	d.mu.Lock()
	d.proxies = append(d.proxies, p.Masked())
	d.mu.Unlock()
	return nil
}

// Classify returns why r looks like probing traffic, or "" when it does not.
func Classify(r *http.Request) string {
	if slices.Contains(blockedMethods, r.Method) {
		return "diagnostic method"
	}
	if len(r.URL.String()) > maxURLLength {
		return "oversized url"
	}
	if strings.Count(r.Header.Get("X-Forwarded-For"), ",") >= maxProxyHops {
		return "proxy chain"
	}
	for _, rl := range rules {
		v := strings.ToLower(rl.field(r))
		for _, n := range rl.needles {
			if strings.Contains(v, n) {
				return rl.reason
			}
		}
	}
	return ""
}

// DetectSuspiciousRequest classifies r and counts it when suspicious.
func (d *Detector) DetectSuspiciousRequest(r *http.Request) bool {
	if Classify(r) == "" {
		return false
	}
	d.suspicious.Add(1)
	return true
}

// ExtractClientIP returns the peer address, or the first forwarded hop
// when the peer is a trusted proxy. Malformed forwarded values are counted
// and ignored.
func (d *Detector) ExtractClientIP(r *http.Request) string {
	peer, err := netip.ParseAddrPort(r.RemoteAddr)
	if err != nil {
		addr, aerr := netip.ParseAddr(r.RemoteAddr)
		if aerr != nil {
			return r.RemoteAddr
		}
		peer = netip.AddrPortFrom(addr, 0)
	}
	direct := peer.Addr().Unmap()
	if !d.trusted(direct) {
		return direct.String()
	}

	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	for _, candidate := range []string{first, r.Header.Get("X-Real-IP")} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if addr, err := netip.ParseAddr(candidate); err == nil {
			return addr.String()
		}
		d.invalidIP.Add(1)
	}
	return direct.String()
}

func (d *Detector) trusted(addr netip.Addr) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.ContainsFunc(d.proxies, func(p netip.Prefix) bool { return p.Contains(addr) })
}

func (d *Detector) GetMetrics() DetectionMetrics {
	return DetectionMetrics{
		SuspiciousRequests: d.suspicious.Load(),
		InvalidIPAttempts:  d.invalidIP.Load(),
		BlockedRequests:    d.blocked.Load(),
	}
}

// Middleware logs suspicious requests and answers diagnostic methods with
// 405. Everything else is served.
func (d *Detector) Middleware(logger *log.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithComponent(log.ComponentSecurity)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := Classify(r)
			if reason == "" {
				next.ServeHTTP(w, r)
				return
			}
			d.suspicious.Add(1)
			logger.WarnContext(r.Context(), "Suspicious request",
				"reason", reason,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path,
				log.FieldClientIP, d.ExtractClientIP(r),
				log.FieldUserAgent, r.UserAgent())
			if slices.Contains(blockedMethods, r.Method) {
				d.blocked.Add(1)
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
