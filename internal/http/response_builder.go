package http

import (
	"encoding/json"
	"html/template"
	"net/http"
)

// Response accumulates status, headers, HX-Trigger events and a body, and
// writes them in one go. Dashboard requests get HTML partials plus events;
// API clients get JSON.
type Response struct {
	status  int
	header  http.Header
	events  map[string]any
	payload []byte
}

func NewResponse() *Response {
	return &Response{status: http.StatusOK, header: http.Header{}, events: map[string]any{}}
}

func (b *Response) Status(code int) *Response {
	b.status = code
	return b
}

func (b *Response) Header(name, value string) *Response {
	b.header.Set(name, value)
	return b
}

// Trigger queues an HX-Trigger event. Later calls with the same name win.
func (b *Response) Trigger(name string, detail any) *Response {
	b.events[name] = detail
	return b
}

func (b *Response) TriggerLedgerChanged(count int, total float64) *Response {
	return b.Trigger("ledger:changed", map[string]any{"count": count, "total": total})
}

func (b *Response) TriggerChatReplied() *Response {
	return b.Trigger("chat:replied", struct{}{})
}

func (b *Response) TriggerFormReset() *Response {
	return b.Trigger("form:reset", struct{}{})
}

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// TriggerNotification shows a toast for durationMs milliseconds.
func (b *Response) TriggerNotification(kind NotificationType, message string, durationMs int) *Response {
	return b.Trigger("show-notification", map[string]any{
		"type":     kind,
		"message":  message,
		"duration": durationMs,
	})
}

func (b *Response) TriggerSuccessNotification(message string) *Response {
	return b.TriggerNotification(NotificationSuccess, message, 3000)
}

func (b *Response) TriggerErrorNotification(message string) *Response {
	return b.TriggerNotification(NotificationError, message, 5000)
}

func (b *Response) BodyString(s string) *Response {
	b.payload = []byte(s)
	return b
}

func (b *Response) BodyHTML(html string) *Response {
	b.header.Set("Content-Type", "text/html; charset=utf-8")
	return b.BodyString(html)
}

// BodyJSON encodes v as the body. An encoding failure turns the response
// into a 500.
func (b *Response) BodyJSON(v any) *Response {
	raw, err := json.Marshal(v)
	if err != nil {
		b.status = http.StatusInternalServerError
		raw = []byte(`{"error":"encoding failed"}`)
	}
	b.header.Set("Content-Type", "application/json; charset=utf-8")
	b.payload = append(raw, '\n')
	return b
}

func (b *Response) Write(w http.ResponseWriter) {
	dst := w.Header()
	for name, values := range b.header {
		dst[name] = values
	}
	if len(b.events) > 0 {
		if raw, err := json.Marshal(b.events); err == nil {
			dst.Set("HX-Trigger", string(raw))
		}
	}
	w.WriteHeader(b.status)
	if len(b.payload) > 0 {
		_, _ = w.Write(b.payload)
	}
}

// ErrorResponse is the HTML error fragment. The message is escaped.
func ErrorResponse(status int, message string) *Response {
	return NewResponse().
		Status(status).
		BodyHTML(`<div class="error">` + template.HTMLEscapeString(message) + `</div>`)
}

// JSONError is the API error body, {"error": message}.
func JSONError(status int, message string) *Response {
	return NewResponse().Status(status).BodyJSON(map[string]string{"error": message})
}
