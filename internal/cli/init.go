// Package cli holds the start-up plumbing and terminal rendering shared by
// the viagens commands.
package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"viagens/internal/config"
	"viagens/internal/log"
)

// LoadConfig reads .env when present, then the environment. override runs
// before validation so command-line flags are validated too.
func LoadConfig(override func(*config.Config)) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg := config.Load()
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger installs a text logger at level on out as the process default.
func SetupLogger(level string, out io.Writer) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	cfg.Handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level})
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		if parent.Err() == nil {
			logger.Info("Shutdown signal received")
		}
	}()
	return ctx, cancel
}
