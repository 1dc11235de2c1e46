package google

import (
	"context"
	"strings"
	"testing"

	"viagens/internal/core"
)

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Config{}, nil)
	if err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
	if err.Error() != "missing GOOGLE_SPREADSHEET_ID" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := New(context.Background(), Config{SpreadsheetID: "sheet"}, nil)
	if err == nil {
		t.Fatal("expected error without credentials")
	}
	if !strings.Contains(err.Error(), "missing service account credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_UnreadableCredentialsFile(t *testing.T) {
	_, err := New(context.Background(), Config{
		SpreadsheetID:   "sheet",
		CredentialsFile: t.TempDir() + "/missing.json",
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestClient_NilService(t *testing.T) {
	c := &Client{spreadsheetID: "test", sheetName: DefaultSheetName}

	if _, err := c.Replace(context.Background(), nil, 0); err == nil {
		t.Error("Replace should fail without a service")
	}
	if _, err := c.ReadEntries(context.Background()); err == nil {
		t.Error("ReadEntries should fail without a service")
	}
}

func TestLedgerRows(t *testing.T) {
	entries := []core.BudgetEntry{
		{ID: "1", Category: core.CategoryFlight, Description: "Internacional GRU-JNB (Casal)", Date: "25/01", Total: 8600, Notes: "Confirmado - BJDTCL"},
		{ID: "b2", Category: core.CategoryGroundTransport, Description: "Ônibus", Date: "Jan", Total: 580},
	}
	rows := ledgerRows(entries, 9180)

	if len(rows) != 4 {
		t.Fatalf("expected header, 2 entries and total, got %d rows", len(rows))
	}
	if rows[0][0] != "ID" {
		t.Errorf("first row should be the header, got %v", rows[0])
	}
	if rows[1][1] != "VOO" || rows[1][4] != 8600.0 {
		t.Errorf("unexpected entry row: %v", rows[1])
	}
	if rows[3][0] != totalLabel || rows[3][4] != 9180.0 {
		t.Errorf("unexpected total row: %v", rows[3])
	}

	if got := ledgerRows(nil, 0); len(got) != 2 {
		t.Errorf("empty ledger should still write header and total, got %d rows", len(got))
	}
}

func TestParseRows(t *testing.T) {
	values := [][]any{
		{"ID", "Categoria", "Descrição", "Data", "Valor", "Notas"},
		{"1", "VOO", "Internacional GRU-JNB (Casal)", "25/01", 8600.0, "Confirmado - BJDTCL"},
		{},
		{"x", "LAZER", "Sem valor", "", "n/a"},
		{"2", "SAFARI", "Kruger", "Fev", "1.744,50"},
		{"3", "LAZER", "Gorjeta", "", 1.125},
		{"4", "OUTROS", "Adaptador", "", "8.600"},
		{"TOTAL", "", "", "", 10344.5, ""},
	}
	got := parseRows(values)

	if len(got) != 4 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(got), got)
	}
	if got[0].ID != "1" || got[0].Total != 8600 || got[0].Notes != "Confirmado - BJDTCL" {
		t.Errorf("unexpected first entry: %+v", got[0])
	}
	if got[1].Category != core.CategorySafari || got[1].Total != 1744.5 || got[1].Notes != "" {
		t.Errorf("unexpected second entry: %+v", got[1])
	}
	if got[2].Total != 1.125 {
		t.Errorf("numeric cell must not be reparsed, got %v", got[2].Total)
	}
	if got[3].Total != 8600 {
		t.Errorf("text cell with thousands dot = %v, want 8600", got[3].Total)
	}
}
