package main

import (
	"context"
	"errors"
	"fmt"

	"viagens/internal/amqp"
	"viagens/internal/backend"
	"viagens/internal/catalog"
	"viagens/internal/chat"
	"viagens/internal/chat/gemini"
	"viagens/internal/config"
	"viagens/internal/ledger"
	"viagens/internal/log"
	"viagens/internal/services"
	"viagens/internal/storage"
)

// ledgerDeps is the storage side shared by every command.
type ledgerDeps struct {
	catalog *catalog.Catalog
	kv      storage.KV
	store   *ledger.Store
	cleanup backend.CleanupFunc
}

func (d *ledgerDeps) Close() error {
	if d == nil || d.cleanup == nil {
		return nil
	}
	return d.cleanup()
}

// openLedger loads the catalog, opens the configured backend and restores
// the ledger from it.
func openLedger(ctx context.Context, cfg *config.Config, logger *log.Logger) (*ledgerDeps, error) {
	cat, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	if cfg.CatalogFile != "" {
		logger.WithComponent(log.ComponentCatalog).InfoContext(ctx, "Loaded trip catalog", "path", cfg.CatalogFile)
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", bcfg.Type, err)
	}

	deps := &ledgerDeps{catalog: cat, kv: res.Store, cleanup: res.Cleanup}
	deps.store = ledger.NewStore(res.Store, cfg.LedgerKey, logger)
	if err := deps.store.Initialize(ctx); err != nil {
		return nil, errors.Join(err, deps.Close())
	}
	return deps, nil
}

// openService wraps the ledger in a service that publishes changes when
// AMQP is configured. Publishing is optional: a broker that cannot be
// reached is logged and skipped.
func openService(ctx context.Context, cfg *config.Config, logger *log.Logger) (*services.LedgerService, *ledgerDeps, *amqp.Client, error) {
	deps, err := openLedger(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	var (
		publisher services.Publisher
		client    *amqp.Client
	)
	if cfg.AMQPURL != "" {
		client, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.WithComponent(log.ComponentAMQP).WarnContext(ctx, "AMQP unavailable, ledger changes will not be mirrored",
				log.FieldError, err)
		} else {
			publisher = client
		}
	}

	return services.NewLedgerService(deps.store, deps.catalog, publisher, logger), deps, client, nil
}

// newRelay builds the assistant. Without an API key, or when the client
// cannot be created, the relay answers with the fallback reply.
func newRelay(ctx context.Context, cfg *config.Config, svc *services.LedgerService, logger *log.Logger) *chat.Relay {
	chatLog := logger.WithComponent(log.ComponentChat)
	var gen chat.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			chatLog.WarnContext(ctx, "Gemini client unavailable", log.FieldError, err, log.FieldModel, cfg.GeminiModel)
		} else {
			chatLog.InfoContext(ctx, "Trip assistant enabled", log.FieldModel, cfg.GeminiModel)
			gen = client
		}
	} else {
		chatLog.WarnContext(ctx, "GEMINI_API_KEY not set, assistant replies are disabled")
	}

	return chat.NewRelay(gen, func() chat.TripContext {
		return chat.NewTripContext(svc.Catalog(), svc.Snapshot())
	}, cfg.ChatTimeout, logger)
}
