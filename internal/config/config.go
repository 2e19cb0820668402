package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Backends lists the accepted STORAGE_BACKEND values.
var Backends = []string{BackendFile, BackendRedis, BackendSQLite}

var ErrUnknownBackend = errors.New("unknown storage backend")

type Config struct {
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile          string `env:"LOG_FILE" envDefault:"tracker.log"`
	StorageBackend   string `env:"STORAGE_BACKEND" envDefault:"file"`
	DataFile         string `env:"DATA_FILE" envDefault:"investigator_data.json"`
	RedisURL         string `env:"REDIS_URL" envDefault:"localhost:6379"`
	RedisKey         string `env:"REDIS_KEY" envDefault:"tracker:investigators"`
	SQLitePath       string `env:"SQLITE_PATH" envDefault:"tracker.db"`
	RecomputeDerived bool   `env:"RECOMPUTE_DERIVED" envDefault:"false"`

	LogLevel slog.Level `env:"-"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env parsing cannot, such as the backend name.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.StorageBackend) {
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, c.StorageBackend, strings.Join(Backends, ", "))
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
