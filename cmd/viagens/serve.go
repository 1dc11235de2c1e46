package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"viagens/internal/cli"
	apphttp "viagens/internal/http"
	"viagens/internal/log"
	"viagens/internal/storage"
)

const shutdownTimeout = 30 * time.Second

var flagPort string

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Run the web dashboard and JSON API",
	Annotations: map[string]string{annotationLogStdout: ""},
	RunE:        runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&flagPort, "port", "p", "", "Listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagPort != "" {
		appCfg.Port = flagPort
		if err := appCfg.Validate(); err != nil {
			return err
		}
	}

	ctx, cancel := cli.SignalContext(cmd.Context(), logger)
	defer cancel()

	svc, deps, broker, err := openService(ctx, appCfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger", log.FieldError, err, "backend", appCfg.StorageBackend)
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("Failed to close ledger service", log.FieldError, err)
		}
		if err := deps.Close(); err != nil {
			logger.Warn("Failed to close storage", log.FieldError, err)
		}
	}()

	checks := map[string]storage.Pinger{}
	if p, ok := deps.kv.(storage.Pinger); ok {
		checks["storage"] = p
	}
	if broker != nil {
		checks["amqp"] = broker
	}

	srv := apphttp.NewServer(apphttp.Config{
		Addr:               ":" + appCfg.Port,
		RateLimitPerMinute: appCfg.RateLimitPerMinute,
		Logger:             logger,
		Checks:             checks,
	}, svc, newRelay(ctx, appCfg, svc, logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting viagens server",
			"port", appCfg.Port,
			"backend", appCfg.StorageBackend,
			"amqp", broker != nil,
			"entries", len(svc.Snapshot().Entries))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", appCfg.Port)
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
