package backend

import (
	"context"
	"path/filepath"
	"testing"

	"viagens/internal/config"
	"viagens/internal/storage"
	"viagens/internal/storage/memory"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{StorageBackend: "sheets"}); err == nil {
		t.Error("expected error for unknown backend")
	}

	cfg, err := FromAppConfig(&config.Config{StorageBackend: "redis", RedisAddr: "cache:6379", RedisDB: 2})
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if cfg.Type != RedisBackend || cfg.RedisAddr != "cache:6379" || cfg.RedisDB != 2 {
		t.Errorf("unexpected backend config: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"redis without addr", Config{Type: RedisBackend}, true},
		{"postgres without url", Config{Type: PostgresBackend}, true},
		{"unknown", Config{Type: "sheets"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTypes(t *testing.T) {
	got := Types()
	if len(got) != 4 || got[0] != "memory" || got[3] != "postgres" {
		t.Errorf("Types() = %v", got)
	}
	for _, name := range got {
		if !BackendType(name).IsValid() {
			t.Errorf("%q listed but not valid", name)
		}
	}
}

func TestCreateBackend(t *testing.T) {
	f := NewFactory(nil)
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend})
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := res.Store.(*memory.Store); !ok {
			t.Errorf("unexpected store %T", res.Store)
		}
		if res.Cleanup != nil {
			t.Error("memory backend needs no cleanup")
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "ledger.db")})
		if err != nil {
			t.Fatal(err)
		}
		defer res.Cleanup()
		if err := res.Store.Save(ctx, "k", []byte(`[]`)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if _, err := res.Store.Load(ctx, "missing"); err != storage.ErrNotFound {
			t.Errorf("Load() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend}); err == nil {
			t.Error("expected validation error")
		}
	})
}
