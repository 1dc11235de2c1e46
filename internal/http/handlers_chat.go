package http

import (
	"net/http"

	"viagens/internal/log"
)

const chatUnavailable = "Assistente indisponível"

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	if s.relay == nil {
		s.fail(w, r, http.StatusServiceUnavailable, chatUnavailable)
		return
	}
	view := s.chatView()
	if isHTMXRequest(r) {
		s.render(r, "chat", view).Write(w)
		return
	}
	writeJSONBody(w, http.StatusOK, map[string]any{"messages": view.Messages})
}

// handleAsk forwards one question. Model failures still answer 200 with
// the fallback reply.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.relay == nil {
		s.fail(w, r, http.StatusServiceUnavailable, chatUnavailable)
		return
	}

	f, err := readFields(r)
	if err != nil {
		s.failErr(w, r, err)
		return
	}

	ctx := r.Context()
	reply, err := s.relay.Ask(ctx, f.Get("question"))
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.appMetrics.questions.Add(1)
	log.FromContext(ctx).DebugContext(ctx, "Chat question answered",
		log.FieldOperation, log.OpAsk,
		"reply_len", len(reply.Text))

	if isHTMXRequest(r) {
		s.render(r, "chat", s.chatView()).
			TriggerChatReplied().
			TriggerFormReset().
			Write(w)
		return
	}
	writeJSONBody(w, http.StatusOK, map[string]any{"reply": reply})
}
