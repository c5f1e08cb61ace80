package config

import (
	"testing"

	"github.com/dmsavelev/caloriebot/internal/logger"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when TELEGRAM_BOT_TOKEN is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("STATE_BACKEND", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "10000" {
		t.Errorf("expected default port 10000, got %q", cfg.Port)
	}
	if cfg.Storage.Driver != StorageDriverFile {
		t.Errorf("expected file driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.ProductsFile != "products.json" || cfg.Storage.UsersFile != "user_data.json" {
		t.Errorf("unexpected storage files: %+v", cfg.Storage)
	}
	if cfg.State.Backend != StateBackendMemory {
		t.Errorf("expected memory state backend, got %q", cfg.State.Backend)
	}
	if cfg.Logger.Level != logger.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.Logger.Level)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("PORT", "8080")
	t.Setenv("STORAGE_DRIVER", StorageDriverPostgres)
	t.Setenv("STATE_BACKEND", StateBackendRedis)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.Storage.Driver != StorageDriverPostgres {
		t.Errorf("expected postgres driver, got %q", cfg.Storage.Driver)
	}
	if cfg.State.Backend != StateBackendRedis {
		t.Errorf("expected redis state backend, got %q", cfg.State.Backend)
	}
	if cfg.Logger.Level != logger.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Logger.Level)
	}
}
