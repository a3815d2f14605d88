// Package config reads server settings from the environment.
//
// A .env file in the working directory, when present, is loaded first; variables
// already set in the environment win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type Config struct {
	Port              int
	LogLevel          slog.Level
	StoreBackend      string
	SQLiteDSN         string
	SeedPath          string
	LoadDelay         time.Duration
	ReportTokenSecret string
	ReportTokenTTL    time.Duration
}

// Load reads .env (if any) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	level, err := ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	backend := strings.ToLower(getEnv("STORE_BACKEND", BackendMemory))
	if backend != BackendMemory && backend != BackendSQLite {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: want %s or %s", backend, BackendMemory, BackendSQLite)
	}

	loadDelay, err := time.ParseDuration(getEnv("LOAD_DELAY", "500ms"))
	if err != nil || loadDelay < 0 {
		return nil, fmt.Errorf("invalid LOAD_DELAY %q", os.Getenv("LOAD_DELAY"))
	}

	tokenTTL, err := time.ParseDuration(getEnv("REPORT_TOKEN_TTL", "15m"))
	if err != nil || tokenTTL <= 0 {
		return nil, fmt.Errorf("invalid REPORT_TOKEN_TTL %q", os.Getenv("REPORT_TOKEN_TTL"))
	}

	return &Config{
		Port:              port,
		LogLevel:          level,
		StoreBackend:      backend,
		SQLiteDSN:         getEnv("SQLITE_DSN", ":memory:"),
		SeedPath:          getEnv("SEED_PATH", ""),
		LoadDelay:         loadDelay,
		ReportTokenSecret: getEnv("REPORT_TOKEN_SECRET", ""),
		ReportTokenTTL:    tokenTTL,
	}, nil
}

// ParseLevel maps debug, info, warn and error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
