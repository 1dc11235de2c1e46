package sheets

import (
	"context"

	"viagens/internal/core"
)

// Ports for outbound adapters.
type (
	// LedgerMirror keeps an external copy of the ledger.
	LedgerMirror interface {
		// Replace overwrites the mirror with entries and their total.
		Replace(ctx context.Context, entries []core.BudgetEntry, total float64) (ref string, err error)
	}

	// LedgerReader reads back the mirrored entries.
	LedgerReader interface {
		ReadEntries(ctx context.Context) ([]core.BudgetEntry, error)
	}

	Mirror interface {
		LedgerMirror
		LedgerReader
	}
)
