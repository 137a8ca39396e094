package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Sink kinds selectable via SINK_KIND.
const (
	SinkSheets   = "sheets"
	SinkPostgres = "postgres"
)

// Config holds all configuration for the application.
// 環境変数はこのパッケージでのみ読む
type Config struct {
	Env string // development, staging, production

	// Logging
	LogLevel  string
	LogFormat string

	// Output sink
	SinkKind string
	Sheets   SheetsConfig
	Database DatabaseConfig

	// Screening pipeline
	Screener ScreenerConfig
}

// SheetsConfig holds Google Sheets sink configuration.
type SheetsConfig struct {
	CredentialsJSON string // service account key, raw JSON
	SpreadsheetID   string
	Worksheet       string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// ScreenerConfig holds batch processing parameters.
type ScreenerConfig struct {
	BatchSize       int           // tickers per batch
	Workers         int           // concurrent analyses per batch
	InterBatchDelay time.Duration // pause between batches
	PostWriteDelay  time.Duration // pause after each sink write
	Schedule        string        // cron spec for the scheduler command
	TickerFile      string        // optional file override for the ticker list
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		SinkKind: getEnv("SINK_KIND", SinkSheets),

		Sheets: SheetsConfig{
			CredentialsJSON: getEnv("GCP_CREDENTIALS_JSON", ""),
			SpreadsheetID:   getEnv("SPREADSHEET_ID", ""),
			Worksheet:       getEnv("WORKSHEET_NAME", "screen"),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Screener: ScreenerConfig{
			BatchSize:       getEnvAsInt("BATCH_SIZE", 50),
			Workers:         getEnvAsInt("WORKERS", 4),
			InterBatchDelay: getEnvAsDuration("INTER_BATCH_DELAY", "3s"),
			PostWriteDelay:  getEnvAsDuration("POST_WRITE_DELAY", "2s"),
			Schedule:        getEnv("SCREEN_SCHEDULE", "0 0 18 * * MON-FRI"),
			TickerFile:      getEnv("TICKER_FILE", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
// Missing sink credentials are a fatal configuration fault: the run
// aborts before any batch work starts.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.SinkKind {
	case SinkSheets:
		if c.Sheets.CredentialsJSON == "" {
			return fmt.Errorf("GCP_CREDENTIALS_JSON is required for the sheets sink")
		}
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("SPREADSHEET_ID is required for the sheets sink")
		}
	case SinkPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres sink")
		}
	default:
		return fmt.Errorf("SINK_KIND must be one of: %s, %s", SinkSheets, SinkPostgres)
	}

	if c.Screener.BatchSize < 1 {
		return fmt.Errorf("BATCH_SIZE must be >= 1")
	}
	if c.Screener.Workers < 1 {
		return fmt.Errorf("WORKERS must be >= 1")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
