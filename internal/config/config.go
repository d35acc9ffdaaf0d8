package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"portfolio/internal/domain"
	"portfolio/internal/history"
)

// Config holds the builder's runtime configuration.
type Config struct {
	History HistoryConfig `yaml:"history"`
	Editor  EditorConfig  `yaml:"editor"`
	Seed    SeedConfig    `yaml:"seed"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// EditorConfig sets the locale forms open in when none is given.
type EditorConfig struct {
	Locale string `yaml:"locale"`
}

// SeedConfig selects the document loaded at startup.
type SeedConfig struct {
	Path  string `yaml:"path"`  // empty: embedded default
	Watch bool   `yaml:"watch"` // reload when Path changes
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{MaxDepth: history.DefaultLimit},
		Editor:  EditorConfig{Locale: string(domain.LocaleEN)},
		Export:  ExportConfig{Dir: "."},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file on top of the defaults and applies
// environment overrides. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("PORTFOLIO_SEED"); path != "" {
		c.Seed.Path = path
	}
	if level := os.Getenv("PORTFOLIO_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if dir := os.Getenv("PORTFOLIO_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.History.MaxDepth <= 0 {
		return fmt.Errorf("history.max_depth must be positive, got %d", c.History.MaxDepth)
	}
	if _, err := domain.ParseLocale(c.Editor.Locale); err != nil {
		return fmt.Errorf("editor.locale: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Seed.Watch && c.Seed.Path == "" {
		return fmt.Errorf("seed.watch requires seed.path")
	}
	return nil
}

// EditorLocale returns the configured locale, falling back to English.
func (c *Config) EditorLocale() domain.Locale {
	l, err := domain.ParseLocale(c.Editor.Locale)
	if err != nil {
		return domain.LocaleEN
	}
	return l
}
