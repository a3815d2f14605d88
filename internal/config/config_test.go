package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var keys = []string{
	"PORT", "LOG_LEVEL", "STORE_BACKEND", "SQLITE_DSN", "SEED_PATH",
	"LOAD_DELAY", "REPORT_TOKEN_SECRET", "REPORT_TOKEN_TTL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Port != 8080 || cfg.LogLevel != slog.LevelInfo || cfg.StoreBackend != BackendMemory {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.SQLiteDSN != ":memory:" || cfg.SeedPath != "" || cfg.ReportTokenSecret != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.LoadDelay != 500*time.Millisecond || cfg.ReportTokenTTL != 15*time.Minute {
		t.Errorf("unexpected durations: %v %v", cfg.LoadDelay, cfg.ReportTokenTTL)
	}
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("LOAD_DELAY", "0s")
	t.Setenv("REPORT_TOKEN_TTL", "1h")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Port != 9090 || cfg.LogLevel != slog.LevelDebug || cfg.StoreBackend != BackendSQLite {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.LoadDelay != 0 || cfg.ReportTokenTTL != time.Hour {
		t.Errorf("unexpected durations: %v %v", cfg.LoadDelay, cfg.ReportTokenTTL)
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "http"},
		{"PORT", "70000"},
		{"LOG_LEVEL", "loud"},
		{"STORE_BACKEND", "postgres"},
		{"LOAD_DELAY", "soon"},
		{"REPORT_TOKEN_TTL", "-1m"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PORT")
	os.Unsetenv("STORE_BACKEND")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7070\nSTORE_BACKEND=sqlite\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("STORE_BACKEND")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 7070 || cfg.StoreBackend != BackendSQLite {
		t.Errorf(".env not applied: %+v", cfg)
	}
}

func TestLoadWithoutDotEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	if _, err := Load(); err != nil {
		t.Errorf("missing .env should not fail: %v", err)
	}
}
