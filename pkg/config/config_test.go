package config

import (
	"os"
	"testing"
	"time"
)

func setSheetsEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SINK_KIND", "sheets")
	t.Setenv("GCP_CREDENTIALS_JSON", `{"type":"service_account"}`)
	t.Setenv("SPREADSHEET_ID", "sheet-id")
}

func TestLoadDefaults(t *testing.T) {
	setSheetsEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}
	if cfg.Screener.BatchSize != 50 {
		t.Errorf("Expected BatchSize to be 50, got %d", cfg.Screener.BatchSize)
	}
	if cfg.Screener.Workers != 4 {
		t.Errorf("Expected Workers to be 4, got %d", cfg.Screener.Workers)
	}
	if cfg.Screener.InterBatchDelay != 3*time.Second {
		t.Errorf("Expected InterBatchDelay to be 3s, got %s", cfg.Screener.InterBatchDelay)
	}
	if cfg.Sheets.Worksheet != "screen" {
		t.Errorf("Expected Worksheet to be screen, got %s", cfg.Sheets.Worksheet)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	setSheetsEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("WORKERS", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}
	if cfg.Screener.BatchSize != 25 {
		t.Errorf("Expected BatchSize to be 25, got %d", cfg.Screener.BatchSize)
	}
	if cfg.Screener.Workers != 2 {
		t.Errorf("Expected Workers to be 2, got %d", cfg.Screener.Workers)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidateMissingSheetsCredentials(t *testing.T) {
	t.Setenv("SINK_KIND", "sheets")
	os.Unsetenv("GCP_CREDENTIALS_JSON")
	os.Unsetenv("SPREADSHEET_ID")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when GCP_CREDENTIALS_JSON is missing, got nil")
	}
}

func TestValidateMissingDatabaseURL(t *testing.T) {
	t.Setenv("SINK_KIND", "postgres")
	os.Unsetenv("DATABASE_URL")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when DATABASE_URL is missing, got nil")
	}
}

func TestValidateUnknownSink(t *testing.T) {
	t.Setenv("SINK_KIND", "kafka")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for unknown sink kind, got nil")
	}
}

func TestInvalidIntFallsBackToDefault(t *testing.T) {
	setSheetsEnv(t)
	t.Setenv("BATCH_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Screener.BatchSize != 50 {
		t.Errorf("Expected BatchSize fallback to 50, got %d", cfg.Screener.BatchSize)
	}
}
