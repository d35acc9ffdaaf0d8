package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.History.MaxDepth)
		assert.Equal(t, "en", cfg.Editor.Locale)
		assert.Equal(t, ".", cfg.Export.Dir)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.NoError(t, cfg.Validate())
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
history:
  max_depth: 10
editor:
  locale: ua
seed:
  path: ./seed.jsonc
  watch: true
logging:
  level: debug
  development: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.History.MaxDepth)
	assert.Equal(t, domain.LocaleUA, cfg.EditorLocale())
	assert.Equal(t, "./seed.jsonc", cfg.Seed.Path)
	assert.True(t, cfg.Seed.Watch)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, ".", cfg.Export.Dir, "unset keys keep their defaults")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "history: [unclosed"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORTFOLIO_SEED", "/tmp/seed.jsonc")
	t.Setenv("PORTFOLIO_LOG_LEVEL", "warn")
	t.Setenv("PORTFOLIO_EXPORT_DIR", "/tmp/out")

	cfg, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/seed.jsonc", cfg.Seed.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/tmp/out", cfg.Export.Dir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero depth", func(c *Config) { c.History.MaxDepth = 0 }},
		{"unknown locale", func(c *Config) { c.Editor.Locale = "de" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"watch without path", func(c *Config) { c.Seed.Watch = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
