package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"viagens/internal/cache"
	"viagens/internal/chat"
	"viagens/internal/lodging"
	"viagens/internal/log"
	"viagens/internal/middleware/ratelimit"
	"viagens/internal/middleware/security"
	"viagens/internal/middleware/trace"
	"viagens/internal/services"
	"viagens/internal/storage"
	appweb "viagens/web"
)

// Config carries the server settings that do not come from the ledger.
type Config struct {
	Addr               string
	RateLimitPerMinute int
	Logger             *log.Logger

	// Checks are pinged by /readyz, keyed by dependency name.
	Checks map[string]storage.Pinger
}

type Server struct {
	http.Server
	templates *template.Template
	ledger    *services.LedgerService
	relay     *chat.Relay
	ranker    *lodging.Ranker
	checks    map[string]storage.Pinger
	logger    *log.Logger

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware
	cacheManager     *cache.Manager
	staysCache       *cache.LRUCache[[]lodging.Section]
	appMetrics       *appMetrics

	shutdownOnce sync.Once
}

type appMetrics struct {
	entriesAdded   atomic.Int64
	entriesRemoved atomic.Int64
	questions      atomic.Int64
	uptime         time.Time
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server. A nil relay disables the chat endpoints.
func NewServer(cfg Config, ledger *services.LedgerService, relay *chat.Relay) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	rlCfg := ratelimit.DefaultConfig()
	if cfg.RateLimitPerMinute > 0 {
		rlCfg.RequestsPerMinute = cfg.RateLimitPerMinute
	}

	cat := ledger.Catalog()
	// the catalog never changes while the server runs
	staysCache := cache.NewLRUCache[[]lodging.Section](1, 0)
	detector := security.NewDetector()

	s := &Server{
		ledger:           ledger,
		relay:            relay,
		ranker:           lodging.NewRanker(cat.Regions, cat.Accommodations, staysCache),
		checks:           cfg.Checks,
		logger:           logger,
		rateLimiter:      ratelimit.NewLimiter(rlCfg),
		securityDetector: detector,
		traceMiddleware:  trace.NewMiddleware(detector.ExtractClientIP, logger),
		cacheManager:     cache.NewManager(logger),
		staysCache:       staysCache,
		appMetrics:       &appMetrics{uptime: time.Now()},
	}
	s.cacheManager.Register(staysCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.WithComponent(log.ComponentTemplate).Warn("Failed parsing templates", log.FieldError, err)
	} else {
		s.templates = t
	}

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/trip", s.handleTrip)
	mux.HandleFunc("GET /api/stays", s.handleStays)

	mux.HandleFunc("GET /api/ledger", s.handleLedger)
	mux.HandleFunc("POST /api/ledger/entries", s.handleAddEntry)
	mux.HandleFunc("DELETE /api/ledger/entries/{id}", s.handleRemoveEntry)
	mux.HandleFunc("POST /api/ledger/quick/bus", s.handleQuickBus)
	mux.HandleFunc("POST /api/ledger/quick/regional-flight", s.handleQuickRegionalFlight)
	mux.HandleFunc("POST /api/ledger/quick/stay/{id}", s.handleQuickStay)

	mux.HandleFunc("GET /api/chat", s.handleTranscript)
	mux.HandleFunc("POST /api/chat", s.handleAsk)

	// Outermost first: trace, detection, headers, rate limit, logger.
	var handler http.Handler = mux
	handler = log.RequestIDMiddleware(trace.RequestID)(handler)
	handler = log.Middleware(logger)(handler)
	handler = s.rateLimiter.Middleware(detector.ExtractClientIP, s.onRateLimit)(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = detector.Middleware(logger)(handler)
	handler = s.traceMiddleware.Middleware(handler)

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// chat replies can take as long as the model timeout
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	s.logger.WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)

	msg := "Muitas requisições. Tente novamente em instantes."
	b := JSONError(http.StatusTooManyRequests, msg)
	if isHTMXRequest(r) {
		b = ErrorResponse(http.StatusTooManyRequests, msg).TriggerErrorNotification(msg)
	}
	b.Header("Retry-After", "60").Write(w)
}

// Shutdown stops background cleanup and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
