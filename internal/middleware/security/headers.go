package security

import (
	"net/http"
	"strconv"
	"strings"
)

// HeadersConfig lists the response headers applied to every request.
// Empty values are skipped.
type HeadersConfig struct {
	// CSP directives, joined with "; ".
	CSP []string

	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool

	FrameOptions        string
	ReferrerPolicy      string
	PermissionsPolicy   string
	CrossOriginOpener   string
	CrossOriginResource string
}

// DefaultHeadersConfig only allows the embedded static assets to run as
// scripts. Lodging links open in a new tab, so framing is denied outright.
func DefaultHeadersConfig() HeadersConfig {
	return HeadersConfig{
		CSP: []string{
			"default-src 'self'",
			"script-src 'self'",
			"style-src 'self' 'unsafe-inline'",
			"img-src 'self' data:",
			"connect-src 'self'",
			"object-src 'none'",
			"frame-ancestors 'none'",
			"base-uri 'self'",
			"form-action 'self'",
		},
		HSTSMaxAge:            365 * 24 * 60 * 60,
		HSTSIncludeSubdomains: true,
		FrameOptions:          "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), payment=()",
		CrossOriginOpener:     "same-origin",
		CrossOriginResource:   "same-origin",
	}
}

// HeadersMiddleware sets a fixed header block on every response, plus
// Strict-Transport-Security on TLS connections.
type HeadersMiddleware struct {
	static http.Header
	hsts   string
}

func NewHeadersMiddleware(cfg HeadersConfig) *HeadersMiddleware {
	h := &HeadersMiddleware{static: http.Header{}}
	for name, value := range map[string]string{
		"X-Content-Type-Options":       "nosniff",
		"X-Frame-Options":              cfg.FrameOptions,
		"Content-Security-Policy":      strings.Join(cfg.CSP, "; "),
		"Referrer-Policy":              cfg.ReferrerPolicy,
		"Permissions-Policy":           cfg.PermissionsPolicy,
		"Cross-Origin-Opener-Policy":   cfg.CrossOriginOpener,
		"Cross-Origin-Resource-Policy": cfg.CrossOriginResource,
	} {
		if value != "" {
			h.static.Set(name, value)
		}
	}

	if cfg.HSTSMaxAge > 0 {
		h.hsts = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			h.hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			h.hsts += "; preload"
		}
	}
	return h
}

func (h *HeadersMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dst := w.Header()
		for name, values := range h.static {
			dst[name] = values
		}
		if r.TLS != nil && h.hsts != "" {
			dst.Set("Strict-Transport-Security", h.hsts)
		}
		next.ServeHTTP(w, r)
	})
}

// StaticAssetMiddleware marks embedded assets cacheable for maxAge seconds.
func StaticAssetMiddleware(maxAge int) func(http.Handler) http.Handler {
	value := "public, max-age=" + strconv.Itoa(maxAge) + ", immutable"
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxAge > 0 {
				w.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
