package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvTimezone, EnvDatabase, EnvLogLevel, EnvFormat} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "ritual.yaml", "timezone: Europe/Berlin\ndatabase: /tmp/h.db\nlog_level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "/tmp/h.db", cfg.Database)
	assert.Equal(t, "text", cfg.Format, "unset keys keep defaults")

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)
}

func TestLoad_EmptyYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "ritual.yml", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_TOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "ritual.toml", "timezone = \"UTC+14\"\nformat = \"json\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC+14", cfg.Timezone)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_UnknownKeys(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeFile(t, "ritual.yaml", "timezon: UTC\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "ritual.toml", "timezon = \"UTC\"\n"))
	assert.ErrorContains(t, err, "timezon")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, "ritual.json", "{}"))
	assert.ErrorContains(t, err, "unsupported extension")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "ritual.yaml", "timezone: Europe/Berlin\nformat: text\n")
	t.Setenv(EnvTimezone, "America/New_York")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvDatabase, "env.db")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Timezone: "America/New_York",
		Database: "env.db",
		LogLevel: "warn",
		Format:   "json",
	}, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad zone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "timezone"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad format", func(c *Config) { c.Format = "xml" }, "format"},
		{"empty db", func(c *Config) { c.Database = " " }, "database"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
