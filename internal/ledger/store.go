// Package ledger maintains the trip's budget entries and their running total.
//
// A Store owns the ordered list of entries and mirrors it to a key-value
// repository after every change. The list is loaded once, by Initialize,
// before any other operation.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"viagens/internal/core"
	"viagens/internal/log"
	"viagens/internal/storage"
)

// DefaultKey is the namespaced key the ledger is stored under.
const DefaultKey = "sa-travel-v15"

var ErrNotInitialized = errors.New("ledger: store not initialized")

// SeedEntries is the ledger used when nothing has been stored yet: the
// already purchased international flight.
func SeedEntries() []core.BudgetEntry {
	return []core.BudgetEntry{{
		ID:          "1",
		Category:    core.CategoryFlight,
		Description: "Internacional GRU-JNB (Casal)",
		Date:        "25/01",
		Total:       8600,
		Notes:       "Confirmado - BJDTCL",
	}}
}

// Snapshot is a point-in-time copy of the ledger.
type Snapshot struct {
	Entries []core.BudgetEntry `json:"entries"`
	Total   float64            `json:"total"`
}

type Store struct {
	mu      sync.Mutex
	repo    storage.KV
	key     string
	logger  *log.Logger
	entries []core.BudgetEntry
	loaded  bool
	newID   func() string
	seq     uint64

	// delivered is the Seq of the last event handed to listeners. Guarded
	// by notifyMu; turn wakes writers waiting for their slot.
	notifyMu  sync.Mutex
	turn      *sync.Cond
	delivered uint64
	listeners listeners
}

// NewStore creates a store persisting under key. An empty key means
// DefaultKey; a nil logger falls back to the default logger.
func NewStore(repo storage.KV, key string, logger *log.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		repo:   repo,
		key:    key,
		logger: logger.WithComponent(log.ComponentLedger),
		newID:  uuid.NewString,
	}
	s.turn = sync.NewCond(&s.notifyMu)
	return s
}

// Initialize loads the persisted ledger. Missing data seeds the default
// entry; unreadable or corrupt data is logged and also falls back to the
// seed. Calls after the first are no-ops.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	raw, err := s.repo.Load(ctx, s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.entries = SeedEntries()
		s.logger.InfoContext(ctx, "No stored ledger, seeding default entry", log.FieldLedgerKey, s.key)
	case err != nil:
		s.entries = SeedEntries()
		s.logger.WarnContext(ctx, "Ledger read failed, falling back to seed",
			log.FieldLedgerKey, s.key, log.FieldError, err, "error_type", log.ErrorTypeDatabase)
	default:
		entries, derr := decode(raw)
		if derr != nil {
			s.entries = SeedEntries()
			s.logger.WarnContext(ctx, "Stored ledger is corrupt, falling back to seed",
				log.FieldLedgerKey, s.key, log.FieldError, derr, "error_type", log.ErrorTypeValidation)
		} else {
			s.entries = entries
			s.logger.InfoContext(ctx, "Ledger loaded", log.FieldLedgerKey, s.key, "entries", len(entries))
		}
	}
	s.loaded = true
	return nil
}

// Add appends an entry under a fresh id and persists the ledger. When the
// write fails the entry is dropped again and the error returned.
func (s *Store) Add(ctx context.Context, in core.NewEntry) (core.BudgetEntry, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return core.BudgetEntry{}, ErrNotInitialized
	}

	entry := in.WithID(s.uniqueID())
	s.entries = append(s.entries, entry)
	if err := s.persist(ctx); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		s.mu.Unlock()
		return core.BudgetEntry{}, fmt.Errorf("add entry: %w", err)
	}
	s.seq++
	ev := Event{Type: EventAdded, Seq: s.seq, Entry: entry, Snapshot: s.snapshotLocked()}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Entry added",
		log.FieldOperation, log.OpCreate,
		log.FieldEntryID, entry.ID,
		log.FieldCategory, entry.Category,
		log.FieldAmount, entry.Total)
	s.deliver(ev)
	return entry, nil
}

// Remove deletes the entry with the given id. A missing id is not an error:
// removed is false and the unchanged ledger is persisted anyway.
func (s *Store) Remove(ctx context.Context, id string) (removed bool, err error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return false, ErrNotInitialized
	}

	prev := s.entries
	idx := slices.IndexFunc(prev, func(e core.BudgetEntry) bool { return e.ID == id })
	var entry core.BudgetEntry
	if idx >= 0 {
		entry = prev[idx]
		next := make([]core.BudgetEntry, 0, len(prev)-1)
		next = append(next, prev[:idx]...)
		next = append(next, prev[idx+1:]...)
		s.entries = next
	}
	if err := s.persist(ctx); err != nil {
		s.entries = prev
		s.mu.Unlock()
		return false, fmt.Errorf("remove entry: %w", err)
	}
	if idx < 0 {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "Remove of unknown entry ignored", log.FieldEntryID, id)
		return false, nil
	}
	s.seq++
	ev := Event{Type: EventRemoved, Seq: s.seq, Entry: entry, Snapshot: s.snapshotLocked()}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Entry removed",
		log.FieldOperation, log.OpDelete,
		log.FieldEntryID, id,
		log.FieldAmount, entry.Total)
	s.deliver(ev)
	return true, nil
}

// Total is the sum of every entry's Total; zero for an empty ledger.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sum(s.entries)
}

// Entries returns a copy of the ledger in insertion order.
func (s *Store) Entries() []core.BudgetEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Snapshot returns the entries together with their total.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for change notifications. Listeners run after the
// change is persisted, outside the store lock, in registration order.
// Notifications are delivered one at a time in the order the changes were
// committed, so a listener must not call Add or Remove on the same store.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	return s.listeners.add(fn)
}

// deliver waits until every earlier event has been handed out, then notifies
// listeners. The store lock is not held, so reads proceed meanwhile.
func (s *Store) deliver(ev Event) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for s.delivered+1 != ev.Seq {
		s.turn.Wait()
	}
	s.listeners.notify(ev)
	s.delivered = ev.Seq
	s.turn.Broadcast()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Entries: slices.Clone(s.entries), Total: sum(s.entries)}
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := encode(s.entries)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, s.key, raw); err != nil {
		s.logger.ErrorContext(ctx, "Ledger write failed",
			log.FieldLedgerKey, s.key, log.FieldError, err, "error_type", log.ErrorTypeDatabase)
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if !slices.ContainsFunc(s.entries, func(e core.BudgetEntry) bool { return e.ID == id }) {
			return id
		}
	}
}

func sum(entries []core.BudgetEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Total
	}
	return total
}

func encode(entries []core.BudgetEntry) ([]byte, error) {
	if entries == nil {
		entries = []core.BudgetEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return raw, nil
}

// decode parses a stored ledger. Entries repeating an earlier id are
// dropped so ids stay unique.
func decode(raw []byte) ([]core.BudgetEntry, error) {
	var entries []core.BudgetEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	seen := make(map[string]struct{}, len(entries))
	out := make([]core.BudgetEntry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out, nil
}
