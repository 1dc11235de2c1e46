package core

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
}

// LedgerSummary is a compact view of the ledger for dashboards.
type LedgerSummary struct {
	Count      int              `json:"count"`
	Total      float64          `json:"total"`
	ByCategory []CategoryAmount `json:"byCategory"`
}

// Summarize totals entries per category. Categories appear in the order
// they are first seen in the ledger.
func Summarize(entries []BudgetEntry) LedgerSummary {
	s := LedgerSummary{Count: len(entries)}
	index := map[Category]int{}
	for _, e := range entries {
		s.Total += e.Total
		i, ok := index[e.Category]
		if !ok {
			i = len(s.ByCategory)
			index[e.Category] = i
			s.ByCategory = append(s.ByCategory, CategoryAmount{Category: e.Category})
		}
		s.ByCategory[i].Amount += e.Total
	}
	return s
}
