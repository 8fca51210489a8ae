// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for tutor-tui.
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tutor-tui configuration.
type Config struct {
	// Portal settings
	Portal PortalConfig `toml:"portal"`

	// Chat settings
	Chat ChatConfig `toml:"chat"`

	// History settings
	History HistoryConfig `toml:"history"`
}

// PortalConfig contains backend connection configuration.
type PortalConfig struct {
	// BaseURL is the portal API base URL
	BaseURL string `toml:"base_url"`
	// Email is prefilled at the login prompt (password is never stored)
	Email string `toml:"email"`
	// TimeoutSecs is the request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
	// RequestsPerSecond caps outbound request rate
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// ChatConfig contains chat session defaults.
type ChatConfig struct {
	// DefaultLevel is the learning level new sessions open with
	DefaultLevel string `toml:"default_level"`
}

// HistoryConfig contains the local transcript archive configuration.
type HistoryConfig struct {
	// Enabled turns the local archive on
	Enabled bool `toml:"enabled"`
	// DatabasePath is the sqlite file (empty = ~/.tutor/history.db)
	DatabasePath string `toml:"database_path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Portal: PortalConfig{
			BaseURL:           "http://127.0.0.1:5000/api",
			TimeoutSecs:       60,
			RequestsPerSecond: 5,
		},
		Chat: ChatConfig{
			DefaultLevel: model.LevelIntermediate.String(),
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// Dir returns the tutor config directory (~/.tutor), creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".tutor")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the TOML config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file if present, layers environment overrides on
// top, fills defaults for zero values, and validates. A missing file is not
// an error; the defaults apply.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over the given config.
func LoadTOML(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// Save writes the config back to ~/.tutor/config.toml.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// =============================================================================
// OVERRIDES, DEFAULTS, VALIDATION
// =============================================================================

// ApplyEnvOverrides layers TUTOR_* environment variables over the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TUTOR_PORTAL_URL"); v != "" {
		c.Portal.BaseURL = v
	}
	if v := os.Getenv("TUTOR_EMAIL"); v != "" {
		c.Portal.Email = v
	}
	if v := os.Getenv("TUTOR_LEVEL"); v != "" {
		c.Chat.DefaultLevel = v
	}
	if v := os.Getenv("TUTOR_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Portal.TimeoutSecs = n
		}
	}
	if v := os.Getenv("TUTOR_NO_HISTORY"); v != "" {
		c.History.Enabled = false
	}
}

// SetDefaults fills defaults for any zero values.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Portal.BaseURL == "" {
		c.Portal.BaseURL = d.Portal.BaseURL
	}
	if c.Portal.TimeoutSecs == 0 {
		c.Portal.TimeoutSecs = d.Portal.TimeoutSecs
	}
	if c.Portal.RequestsPerSecond == 0 {
		c.Portal.RequestsPerSecond = d.Portal.RequestsPerSecond
	}
	if c.Chat.DefaultLevel == "" {
		c.Chat.DefaultLevel = d.Chat.DefaultLevel
	}
	if c.History.DatabasePath == "" {
		if dir, err := Dir(); err == nil {
			c.History.DatabasePath = filepath.Join(dir, "history.db")
		}
	}
}

// Validate rejects configurations the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Portal.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("portal.base_url %q is not a valid URL", c.Portal.BaseURL)
	}
	if _, err := model.ParseLevel(c.Chat.DefaultLevel); err != nil {
		return fmt.Errorf("chat.default_level %q: %w", c.Chat.DefaultLevel, err)
	}
	if c.Portal.TimeoutSecs < 0 {
		return fmt.Errorf("portal.timeout_secs must be positive")
	}
	return nil
}

// Timeout returns the portal request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Portal.TimeoutSecs) * time.Second
}

// DefaultLevel returns the configured learning level. Validate has already
// checked it parses.
func (c *Config) DefaultLevel() model.LearningLevel {
	l, err := model.ParseLevel(c.Chat.DefaultLevel)
	if err != nil {
		return model.LevelIntermediate
	}
	return l
}
