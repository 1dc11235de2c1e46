package google

import (
	"fmt"
	"strings"

	"viagens/internal/core"
)

var header = []any{"ID", "Categoria", "Descrição", "Data", "Valor", "Notas"}

const totalLabel = "TOTAL"

func ledgerRows(entries []core.BudgetEntry, total float64) [][]any {
	rows := make([][]any, 0, len(entries)+2)
	rows = append(rows, header)
	for _, e := range entries {
		rows = append(rows, []any{e.ID, string(e.Category), e.Description, e.Date, e.Total, e.Notes})
	}
	rows = append(rows, []any{totalLabel, "", "", "", total, ""})
	return rows
}

// parseRows converts a values matrix back into entries. The header row,
// blank rows and the total row are skipped, as are rows whose amount
// cannot be parsed.
func parseRows(values [][]any) []core.BudgetEntry {
	var out []core.BudgetEntry
	for i, raw := range values {
		row := toStrings(raw)
		id := safeGet(row, 0)
		if id == "" || strings.EqualFold(id, totalLabel) {
			continue
		}
		if i == 0 && strings.EqualFold(id, "ID") {
			continue
		}
		amount, err := amountCell(raw, row, 4)
		if err != nil {
			continue
		}
		out = append(out, core.BudgetEntry{
			ID:          id,
			Category:    core.Category(safeGet(row, 1)),
			Description: safeGet(row, 2),
			Date:        safeGet(row, 3),
			Total:       amount,
			Notes:       safeGet(row, 5),
		})
	}
	return out
}

// amountCell prefers the numeric cell value; only text cells go through
// ParseAmount.
func amountCell(raw []any, row []string, idx int) (float64, error) {
	if idx < len(raw) {
		if v, ok := raw[idx].(float64); ok {
			return v, nil
		}
	}
	return core.ParseAmount(safeGet(row, idx))
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
