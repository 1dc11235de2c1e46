// Package memory is an in-process ledger mirror for development and tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"viagens/internal/core"
	ports "viagens/internal/sheets"
)

var _ ports.Mirror = (*Mirror)(nil)

type Mirror struct {
	mu      sync.Mutex
	entries []core.BudgetEntry
	total   float64
	writes  int
}

func New() *Mirror {
	return &Mirror{}
}

func (m *Mirror) Replace(_ context.Context, entries []core.BudgetEntry, total float64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = slices.Clone(entries)
	m.total = total
	m.writes++
	return "memory", nil
}

func (m *Mirror) ReadEntries(context.Context) ([]core.BudgetEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries), nil
}

// Total is the total recorded by the last Replace.
func (m *Mirror) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

// Writes counts Replace calls.
func (m *Mirror) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
