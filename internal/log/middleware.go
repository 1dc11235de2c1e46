package log

import (
	"context"
	"log/slog"
	"net/http"
)

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger, or the default logger under the
// app component when ctx carries none.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return logger
	}
	return Default()
}

// Middleware puts logger in every request context.
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return enrich(func(*http.Request, *Logger) *Logger { return logger })
}

// ComponentMiddleware switches the request logger to component.
func ComponentMiddleware(component string) func(http.Handler) http.Handler {
	return enrich(func(_ *http.Request, l *Logger) *Logger { return l.WithComponent(component) })
}

// RequestIDMiddleware tags the request logger with the id returned by
// extractRequestID.
func RequestIDMiddleware(extractRequestID func(*http.Request) string) func(http.Handler) http.Handler {
	return enrich(func(r *http.Request, l *Logger) *Logger {
		return l.With(FieldRequestID, extractRequestID(r))
	})
}

func enrich(derive func(*http.Request, *Logger) *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := derive(r, FromContext(r.Context()))
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), logger)))
		})
	}
}

type requestLine struct {
	method, path, query, userAgent, referer string
}

func newRequestLine(r *http.Request, withClientHeaders bool) requestLine {
	line := requestLine{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery}
	if withClientHeaders {
		line.userAgent = r.Header.Get("User-Agent")
		line.referer = r.Header.Get("Referer")
	}
	return line
}

// StructuredLogger writes the recurring records (access log, ledger
// changes, failures) with a fixed field set.
type StructuredLogger struct {
	logger *Logger
}

func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{logger: logger}
}

func (sl *StructuredLogger) LogHTTPStart(ctx context.Context, r *http.Request, clientIP string) {
	fields := NewFields().
		WithHTTPRequest(newRequestLine(r, true)).
		WithClientIP(clientIP)
	sl.logger.DebugContext(ctx, "HTTP request started", fields.ToSlice()...)
}

// LogHTTPEnd logs 4xx at Warn and 5xx at Error.
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, r *http.Request, statusCode int, durationMs int64, clientIP string) {
	level := slog.LevelInfo
	switch {
	case statusCode >= 500:
		level = slog.LevelError
	case statusCode >= 400:
		level = slog.LevelWarn
	}

	fields := NewFields().
		WithHTTPRequest(newRequestLine(r, false)).
		WithHTTPResponse(statusCode, durationMs).
		WithClientIP(clientIP)
	sl.logger.log(ctx, level, "HTTP request completed", fields.ToSlice())
}

// LogEntryAdded records a ledger addition and what triggered it (manual
// form, quick action, CLI).
func (sl *StructuredLogger) LogEntryAdded(ctx context.Context, id, desc, category string, amount float64, source string) {
	fields := NewFields().
		WithEntry(id, desc, category, amount).
		WithOperation(OpCreate)
	fields[FieldSource] = source
	sl.logger.InfoContext(ctx, "Ledger entry added", fields.ToSlice()...)
}

// LogError logs err under component, which may differ from the logger's.
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	fields.WithError(err).WithOperation(operation)
	sl.logger.WithComponent(component).ErrorContext(ctx, msg, fields.ToSlice()...)
}
