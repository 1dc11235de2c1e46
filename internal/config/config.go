package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var validBackends = []string{BackendMemory, BackendSQLite, BackendRedis, BackendPostgres}

type Config struct {
	// HTTP Server
	Port               string
	RateLimitPerMinute int

	// Logging
	LogLevel string

	// Ledger storage
	StorageBackend string
	LedgerKey      string
	SQLiteDBPath   string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	PostgresURL    string

	// AMQP, optional for serve
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Chat
	GeminiAPIKey string
	GeminiModel  string
	ChatTimeout  time.Duration

	// Trip catalog override
	CatalogFile string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8081"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		LogLevel:           getEnv("LOG_LEVEL", "info"),

		StorageBackend: getEnv("STORAGE_BACKEND", BackendSQLite),
		LedgerKey:      getEnv("LEDGER_KEY", "sa-travel-v15"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/viagens.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		PostgresURL:    getEnv("POSTGRES_URL", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "viagens"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_changed"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		ChatTimeout:  getEnvDuration("CHAT_TIMEOUT", 30*time.Second),

		CatalogFile: getEnv("CATALOG_FILE", ""),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if !slices.Contains(validBackends, c.StorageBackend) {
		errors = append(errors, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.StorageBackend, validBackends))
	}
	if strings.TrimSpace(c.LedgerKey) == "" {
		errors = append(errors, "ledger key cannot be empty")
	}

	switch c.StorageBackend {
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			errors = append(errors, "Redis address cannot be empty when using redis backend")
		}
		if c.RedisDB < 0 {
			errors = append(errors, fmt.Sprintf("invalid Redis DB %d: must not be negative", c.RedisDB))
		}
	case BackendPostgres:
		if c.PostgresURL == "" {
			errors = append(errors, "POSTGRES_URL is required when using postgres backend")
		} else if u, err := url.Parse(c.PostgresURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid Postgres URL: %v", err))
		} else if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			errors = append(errors, fmt.Sprintf("invalid Postgres URL scheme '%s': must be 'postgres' or 'postgresql'", u.Scheme))
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoogleServiceAccountFile != "" {
		if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
		}
	}

	if strings.TrimSpace(c.GeminiModel) == "" {
		errors = append(errors, "Gemini model cannot be empty")
	}
	if c.ChatTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid chat timeout %v: must be at least 1 second", c.ChatTimeout))
	} else if c.ChatTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid chat timeout %v: must be at most 5 minutes", c.ChatTimeout))
	}

	if c.CatalogFile != "" {
		if _, err := os.Stat(c.CatalogFile); err != nil {
			errors = append(errors, fmt.Sprintf("catalog file not readable: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ValidateWorker checks the settings the sync worker cannot run without.
func (c *Config) ValidateWorker() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.AMQPURL == "" {
		return fmt.Errorf("configuration validation failed:\n- AMQP_URL is required for the worker")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
