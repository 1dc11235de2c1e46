package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"viagens/internal/amqp"
	"viagens/internal/catalog"
	"viagens/internal/core"
	"viagens/internal/ledger"
	"viagens/internal/log"
)

const publishTimeout = 5 * time.Second

// Publisher announces ledger changes to other processes.
type Publisher interface {
	PublishLedgerChanged(ctx context.Context, msg *amqp.LedgerChangedMessage) error
}

// LedgerService orchestrates ledger operations, catalog shortcuts and
// change notifications.
type LedgerService struct {
	store     *ledger.Store
	catalog   *catalog.Catalog
	publisher Publisher
	logger    *log.Logger
	cancel    func()
}

// NewLedgerService wires store changes to publisher. A nil publisher
// disables notifications.
func NewLedgerService(store *ledger.Store, cat *catalog.Catalog, publisher Publisher, logger *log.Logger) *LedgerService {
	if logger == nil {
		logger = log.Default()
	}
	s := &LedgerService{
		store:     store,
		catalog:   cat,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
	s.cancel = store.Subscribe(s.publish)
	return s
}

// Add validates and records an entry.
func (s *LedgerService) Add(ctx context.Context, in core.NewEntry) (core.BudgetEntry, error) {
	if err := in.Validate(); err != nil {
		return core.BudgetEntry{}, err
	}
	return s.store.Add(ctx, in)
}

// AddBus records the domestic bus legs for scenario.
func (s *LedgerService) AddBus(ctx context.Context, scenario catalog.Scenario) (core.BudgetEntry, error) {
	in, err := s.catalog.BusEntry(scenario)
	if err != nil {
		return core.BudgetEntry{}, err
	}
	return s.store.Add(ctx, in)
}

// AddRegionalFlight records the JNB-CPT round trip.
func (s *LedgerService) AddRegionalFlight(ctx context.Context) (core.BudgetEntry, error) {
	return s.store.Add(ctx, s.catalog.RegionalFlightEntry())
}

// AddStay records booking the lodging option with the given id.
func (s *LedgerService) AddStay(ctx context.Context, id string) (core.BudgetEntry, error) {
	in, err := s.catalog.StayEntry(id)
	if err != nil {
		return core.BudgetEntry{}, err
	}
	return s.store.Add(ctx, in)
}

func (s *LedgerService) Remove(ctx context.Context, id string) (bool, error) {
	return s.store.Remove(ctx, id)
}

func (s *LedgerService) Snapshot() ledger.Snapshot {
	return s.store.Snapshot()
}

func (s *LedgerService) Summary() core.LedgerSummary {
	return core.Summarize(s.store.Entries())
}

func (s *LedgerService) Catalog() *catalog.Catalog {
	return s.catalog
}

// publish runs after each persisted change. Failures are logged only: the
// change is already durable.
func (s *LedgerService) publish(ev ledger.Event) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	msg := amqp.NewLedgerChangedMessage(string(ev.Type), ev.Entry.ID, ev.Snapshot.Entries, ev.Snapshot.Total)
	if err := s.publisher.PublishLedgerChanged(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish ledger change",
			log.FieldOperation, log.OpPublish,
			log.FieldEvent, ev.Type,
			log.FieldEntryID, ev.Entry.ID,
			log.FieldError, err)
	}
}

// Close stops notifications and closes the publisher when it owns a
// connection.
func (s *LedgerService) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	var errs []error
	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}
	return errors.Join(errs...)
}
