// Package config loads CLI settings from an optional YAML or TOML file and
// the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/roach88/ritual/internal/calendar"
)

// Environment variables that override file values.
const (
	EnvTimezone = "RITUAL_TIMEZONE"
	EnvDatabase = "RITUAL_DB"
	EnvLogLevel = "RITUAL_LOG_LEVEL"
	EnvFormat   = "RITUAL_FORMAT"
)

// Config holds CLI settings.
type Config struct {
	Timezone string `yaml:"timezone" toml:"timezone"`
	Database string `yaml:"database" toml:"database"`
	LogLevel string `yaml:"log_level" toml:"log_level"`
	Format   string `yaml:"format" toml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Timezone: "UTC",
		Database: "ritual.db",
		LogLevel: "info",
		Format:   "text",
	}
}

// Load reads path (if non-empty) over the defaults, then applies environment
// overrides and validates the result. The file format follows the extension:
// .yaml/.yml or .toml. Unknown keys are rejected in both.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
		}
	default:
		return fmt.Errorf("config %s: unsupported extension %q (want .yaml, .yml or .toml)", path, ext)
	}
	return nil
}

func overrideFromEnv(cfg *Config) {
	if tz := os.Getenv(EnvTimezone); tz != "" {
		cfg.Timezone = tz
	}
	if db := os.Getenv(EnvDatabase); db != "" {
		cfg.Database = db
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if format := os.Getenv(EnvFormat); format != "" {
		cfg.Format = format
	}
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config timezone: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("config log_level: %w", err)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("config format: must be text or json, got %q", c.Format)
	}
	if strings.TrimSpace(c.Database) == "" {
		return errors.New("config database: path is required")
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	return calendar.LoadZone(c.Timezone)
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}
