package http

import (
	"context"
	"net/http"

	"viagens/internal/catalog"
	"viagens/internal/core"
	"viagens/internal/log"
)

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	view := s.ledgerView()
	if isHTMXRequest(r) {
		s.render(r, "ledger", view).Write(w)
		return
	}
	writeJSONBody(w, http.StatusOK, map[string]any{
		"entries": view.Entries,
		"total":   view.Total,
		"summary": view.Summary,
	})
}

// handleAddEntry adds a manual entry from a JSON or form body.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		s.failErr(w, r, err)
		return
	}

	in, err := parseNewEntry(f)
	if err != nil {
		s.failErr(w, r, err)
		return
	}

	s.addEntry(w, r, "manual", func(ctx context.Context) (core.BudgetEntry, error) {
		return s.ledger.Add(ctx, in)
	})
}

func (s *Server) handleQuickBus(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	scenario, err := catalog.ParseScenario(f.Get("scenario"))
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.addEntry(w, r, "quick_bus", func(ctx context.Context) (core.BudgetEntry, error) {
		return s.ledger.AddBus(ctx, scenario)
	})
}

func (s *Server) handleQuickRegionalFlight(w http.ResponseWriter, r *http.Request) {
	s.addEntry(w, r, "quick_regional_flight", s.ledger.AddRegionalFlight)
}

func (s *Server) handleQuickStay(w http.ResponseWriter, r *http.Request) {
	id := sanitizeInput(r.PathValue("id"))
	s.addEntry(w, r, "quick_stay", func(ctx context.Context) (core.BudgetEntry, error) {
		return s.ledger.AddStay(ctx, id)
	})
}

// addEntry runs one ledger addition and writes the result.
func (s *Server) addEntry(w http.ResponseWriter, r *http.Request, source string, add func(context.Context) (core.BudgetEntry, error)) {
	ctx := r.Context()
	e, err := add(ctx)
	if err != nil {
		status, msg := errorStatus(err)
		if status == http.StatusInternalServerError {
			events(ctx).LogError(ctx, "Failed to add ledger entry", err, log.ComponentLedger, log.OpCreate, nil)
			msg = "Erro ao salvar no orçamento"
		}
		s.fail(w, r, status, msg)
		return
	}

	s.appMetrics.entriesAdded.Add(1)
	events(ctx).LogEntryAdded(ctx, e.ID, e.Description, string(e.Category), e.Total, source)

	if isHTMXRequest(r) {
		view := s.ledgerView()
		s.render(r, "ledger", view).
			TriggerLedgerChanged(len(view.Entries), view.Total).
			TriggerFormReset().
			TriggerSuccessNotification("Adicionado: " + e.Description).
			Write(w)
		return
	}
	writeJSONBody(w, http.StatusCreated, e)
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := sanitizeInput(r.PathValue("id"))

	removed, err := s.ledger.Remove(ctx, id)
	if err != nil {
		events(ctx).LogError(ctx, "Failed to remove ledger entry", err, log.ComponentLedger, log.OpDelete,
			log.LogFields{log.FieldEntryID: id})
		s.fail(w, r, http.StatusInternalServerError, "Erro ao remover do orçamento")
		return
	}
	if removed {
		s.appMetrics.entriesRemoved.Add(1)
		log.FromContext(ctx).InfoContext(ctx, "Ledger entry removed",
			log.FieldEntryID, id, log.FieldOperation, log.OpDelete)
	}

	if isHTMXRequest(r) {
		view := s.ledgerView()
		s.render(r, "ledger", view).
			TriggerLedgerChanged(len(view.Entries), view.Total).
			Write(w)
		return
	}
	writeJSONBody(w, http.StatusOK, map[string]any{"id": id, "removed": removed})
}

// failErr reports err with the status errorStatus assigns it. Internal
// errors are logged, never shown.
func (s *Server) failErr(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		ctx := r.Context()
		log.FromContext(ctx).ErrorContext(ctx, "Request failed", log.FieldError, err, log.FieldPath, r.URL.Path)
	}
	s.fail(w, r, status, msg)
}

// fail writes an error as an HTML fragment with a notification for the
// dashboard, or as JSON for API clients.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if isHTMXRequest(r) {
		ErrorResponse(status, msg).TriggerErrorNotification(msg).Write(w)
		return
	}
	JSONError(status, msg).Write(w)
}

// events returns the request-scoped structured logger.
func events(ctx context.Context) *log.StructuredLogger {
	return log.NewStructuredLogger(log.FromContext(ctx))
}
