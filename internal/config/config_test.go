package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Port)
	}
	if cfg.MaxMonths != 600 {
		t.Errorf("expected max months 600, got %d", cfg.MaxMonths)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("expected cache ttl 10m, got %s", cfg.CacheTTL)
	}
	if cfg.ExpectedReturns.Equity != 12 {
		t.Errorf("expected equity return 12, got %f", cfg.ExpectedReturns.Equity)
	}
	if cfg.CacheMaxEntries != 10000 {
		t.Errorf("expected cache max entries 10000, got %d", cfg.CacheMaxEntries)
	}
}

func TestLoadConfigRejectsEmptyCache(t *testing.T) {
	t.Setenv("CACHE_MAX_ENTRIES", "0")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for zero cache_max_entries")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_RATE", "50")
	t.Setenv("RETURNS_GOLD", "9.5")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.MaxRate != 50 {
		t.Errorf("expected max rate 50, got %f", cfg.MaxRate)
	}
	if cfg.ExpectedReturns.Gold != 9.5 {
		t.Errorf("expected gold return 9.5, got %f", cfg.ExpectedReturns.Gold)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected cache ttl 30s, got %s", cfg.CacheTTL)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("max_months: 360\nreturns:\n  equity: 10.5\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.MaxMonths != 360 {
		t.Errorf("expected max months 360, got %d", cfg.MaxMonths)
	}
	if cfg.ExpectedReturns.Equity != 10.5 {
		t.Errorf("expected equity return 10.5, got %f", cfg.ExpectedReturns.Equity)
	}
	if cfg.ExpectedReturns.Debt != 7 {
		t.Errorf("expected default debt return 7, got %f", cfg.ExpectedReturns.Debt)
	}
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "70000")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for out-of-range port")
	}
}
