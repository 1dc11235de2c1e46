package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"viagens/internal/catalog"
	"viagens/internal/chat"
	"viagens/internal/core"
	"viagens/internal/lodging"
	"viagens/internal/log"
)

type (
	ledgerView struct {
		Entries []core.BudgetEntry
		Total   float64
		Summary core.LedgerSummary
	}

	chatView struct {
		Enabled  bool
		Messages []chat.Message
	}

	scenarioOption struct {
		ID    catalog.Scenario
		Label string
		Total float64
	}

	indexData struct {
		Catalog    *catalog.Catalog
		Ledger     ledgerView
		Stays      []lodging.Section
		Chat       chatView
		Categories []core.Category
		Scenarios  []scenarioOption
		MinRating  float64
	}
)

func (s *Server) ledgerView() ledgerView {
	snap := s.ledger.Snapshot()
	return ledgerView{
		Entries: snap.Entries,
		Total:   snap.Total,
		Summary: core.Summarize(snap.Entries),
	}
}

func (s *Server) chatView() chatView {
	if s.relay == nil {
		return chatView{}
	}
	return chatView{Enabled: true, Messages: s.relay.Transcript()}
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().BodyJSON(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).Round(time.Second).String(),
	}).Write(w)
}

// handleReady pings every configured dependency.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.checks[name].Ping(ctx); err != nil {
			log.FromContext(r.Context()).WarnContext(ctx, "Readiness check failed",
				"check", name, log.FieldError, err)
			checks[name] = fmt.Sprintf("failed: %v", err)
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	checks["ledger"] = map[string]any{
		"entries": len(s.ledger.Snapshot().Entries),
		"status":  "ok",
	}
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.ActiveClients(),
		"status":         "ok",
	}

	NewResponse().Status(httpStatus).BodyJSON(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

// handleMetrics provides application and security metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	securityMetrics := s.securityDetector.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	traceMetrics := s.traceMiddleware.GetMetrics()
	snap := s.ledger.Snapshot()

	metric := func(name, help, kind string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n", name, help)
		fmt.Fprintf(w, "# TYPE %s %s\n", name, kind)
		fmt.Fprintf(w, "%s %v\n\n", name, value)
	}

	metric("http_requests_total", "Total number of HTTP requests", "counter", traceMetrics.TotalRequests)
	metric("http_server_errors_total", "Responses with a 5xx status", "counter", traceMetrics.ServerErrors)
	metric("http_response_time_avg_microseconds", "Average response time", "gauge", traceMetrics.AverageResponseTime)
	metric("ledger_entries_added_total", "Ledger entries added over HTTP", "counter", s.appMetrics.entriesAdded.Load())
	metric("ledger_entries_removed_total", "Ledger entries removed over HTTP", "counter", s.appMetrics.entriesRemoved.Load())
	metric("ledger_entries", "Current number of ledger entries", "gauge", len(snap.Entries))
	metric("ledger_total_brl", "Current ledger total in reais", "gauge", fmt.Sprintf("%.2f", snap.Total))
	metric("chat_questions_total", "Questions sent to the trip assistant", "counter", s.appMetrics.questions.Load())
	cacheStats := s.staysCache.Stats()
	metric("cache_entries", "Current cache entries", "gauge", s.staysCache.Size())
	metric("cache_hits_total", "Stay ranking cache hits", "counter", cacheStats.Hits)
	metric("cache_misses_total", "Stay ranking cache misses", "counter", cacheStats.Misses)
	metric("rate_limit_hits_total", "Total rate limit hits", "counter", rateLimitMetrics.TotalHits)
	metric("active_rate_limit_clients", "Currently tracked rate limit clients", "gauge", rateLimitMetrics.ClientCount)
	metric("suspicious_requests_total", "Total suspicious requests detected", "counter", securityMetrics.SuspiciousRequests)
	metric("blocked_requests_total", "Requests rejected by method", "counter", securityMetrics.BlockedRequests)
	metric("uptime_seconds", "Application uptime in seconds", "gauge", fmt.Sprintf("%.0f", time.Since(s.appMetrics.uptime).Seconds()))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentTemplate).ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			"error_type", log.ErrorTypeConfiguration)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	cat := s.ledger.Catalog()
	data := indexData{
		Catalog:    cat,
		Ledger:     s.ledgerView(),
		Stays:      s.ranker.Sections(),
		Chat:       s.chatView(),
		Categories: core.Categories(),
		Scenarios: []scenarioOption{
			{ID: catalog.ScenarioDirect, Label: "Direto para SP", Total: cat.BusTotal(catalog.ScenarioDirect)},
			{ID: catalog.ScenarioViaLeme, Label: "Via Leme", Total: cat.BusTotal(catalog.ScenarioViaLeme)},
		},
		MinRating: lodging.MinRating,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Index template execution failed",
			log.FieldError, err, "template", "index.html")
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// handleTrip returns the static trip catalog.
func (s *Server) handleTrip(w http.ResponseWriter, r *http.Request) {
	NewResponse().BodyJSON(s.ledger.Catalog()).Write(w)
}

// handleStays returns the lodging options ranked per region.
func (s *Server) handleStays(w http.ResponseWriter, r *http.Request) {
	NewResponse().BodyJSON(map[string]any{
		"minRating": lodging.MinRating,
		"sections":  s.ranker.Sections(),
	}).Write(w)
}

// render executes a named partial into a builder. Template failures are
// logged and become a 500.
func (s *Server) render(r *http.Request, name string, data any) *Response {
	if s.templates == nil {
		return ErrorResponse(http.StatusInternalServerError, "templates not loaded")
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Partial template execution failed",
			log.FieldError, err, "template", name, log.FieldOperation, log.OpRender)
		return ErrorResponse(http.StatusInternalServerError, "Erro ao renderizar")
	}
	return NewResponse().BodyHTML(buf.String())
}

// writeJSONBody is a convenience for JSON success responses.
func writeJSONBody(w http.ResponseWriter, status int, v any) {
	NewResponse().Status(status).BodyJSON(v).Write(w)
}
