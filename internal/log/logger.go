// Package log tags slog records with the component that wrote them and
// carries request-scoped loggers through contexts.
package log

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Logger is a slog.Logger bound to a component. Every record it writes
// carries a component attribute.
type Logger struct {
	*slog.Logger
	component string
}

type Config struct {
	Level     slog.Level
	Component string
	// Handler overrides the text handler on stdout built from Level.
	Handler slog.Handler
}

func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Component: ComponentApp,
	}
}

func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: config.Level})
	}
	component := config.Component
	if component == "" {
		component = ComponentApp
	}
	return &Logger{Logger: slog.New(handler), component: component}
}

// Default wraps slog.Default under the app component.
func Default() *Logger {
	return &Logger{Logger: slog.Default(), component: ComponentApp}
}

// SetDefault installs logger as the process-wide slog default.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), component: l.component}
}

// WithComponent returns a logger writing under component. Attributes added
// with With are kept.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger, component: component}
}

func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) Debug(msg string, args ...any) { l.log(context.Background(), slog.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(context.Background(), slog.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(context.Background(), slog.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(context.Background(), slog.LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, args)
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if !l.Enabled(ctx, level) {
		return
	}
	l.Logger.Log(ctx, level, msg, append([]any{FieldComponent, l.component}, args...)...)
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown values yield Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
