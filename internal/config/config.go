// Package config loads village configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hamlet/internal/engine"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the full configuration of a village session.
type Config struct {
	Village engine.Setup `yaml:"village"`
	Storage Storage      `yaml:"storage"`
	Log     Log          `yaml:"log"`
}

// Storage selects and configures the persistence backend.
type Storage struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"` // SQLite file
	DSN    string `yaml:"dsn"`  // Postgres connection string
}

// Log configures the default slog logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the standard configuration: the default village saved
// to a local SQLite file.
func Default() Config {
	return Config{
		Village: engine.DefaultSetup(),
		Storage: Storage{
			Driver: DriverSQLite,
			Path:   "data/villages.db",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults, applies environment overrides
// and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(raw, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Keys absent from the document keep the
// values already in cfg; a catalog list given in the document replaces
// the default list as a whole.
func Parse(raw []byte, cfg *Config) error {
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// ApplyEnv overrides storage and logging settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("VILLAGE_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("VILLAGE_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("VILLAGE_PG_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("VILLAGE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the storage and logging settings and that the village
// catalog builds.
func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for sqlite"))
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if f := strings.ToLower(c.Log.Format); f != "" && f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("unknown log.format %q", c.Log.Format))
	}

	if c.Village.DeathThreshold < 0 || c.Village.MaxWorkers < 0 {
		errs = append(errs, errors.New("village.max_workers and village.death_threshold must not be negative"))
	}
	if _, err := engine.New(c.Village); err != nil {
		errs = append(errs, fmt.Errorf("village: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// SlogLevel maps Log.Level to a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return level, nil
}

// NewLogger builds the slog logger described by Log.
func (c Config) NewLogger() *slog.Logger {
	level, _ := c.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
