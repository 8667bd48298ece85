// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for owlet.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/morganforge/owlet-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete owlet configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Auth   AuthConfig   `toml:"auth"`
	Chat   ChatConfig   `toml:"chat"`
	UI     UIConfig     `toml:"ui"`
}

// ServerConfig describes how to reach the tutoring portal.
type ServerConfig struct {
	// BaseURL is the portal API base URL.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
	// RequestsPerSec caps outgoing request rate.
	RequestsPerSec int `toml:"requests_per_sec"`
}

// AuthConfig controls session token storage.
type AuthConfig struct {
	// TokenFile is where the bearer token is persisted.
	// Default: ~/.owlet/token
	TokenFile string `toml:"token_file"`
	// EncryptToken seals the token at rest. Default: true.
	EncryptToken bool `toml:"encrypt_token"`
}

// ChatConfig controls the chat screens.
type ChatConfig struct {
	// DefaultKidID is the kid opened when none is given on the command
	// line. Zero means always ask.
	DefaultKidID int64 `toml:"default_kid_id"`
	// CacheEnabled keeps last known-good transcripts in a local SQLite
	// database for offline fallback display.
	CacheEnabled bool `toml:"cache_enabled"`
	// CachePath is the SQLite database location.
	// Default: ~/.owlet/transcripts.db
	CachePath string `toml:"cache_path"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// WordWrap is the rendering width for tutor answers (0 = terminal width).
	WordWrap int `toml:"word_wrap"`
	// ShowSubjects displays the subject tag next to answers.
	ShowSubjects bool `toml:"show_subjects"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSecs:    30,
			RequestsPerSec: 5,
		},
		Auth: AuthConfig{
			TokenFile:    filepath.Join(configDir(), "token"),
			EncryptToken: true,
		},
		Chat: ChatConfig{
			CacheEnabled: true,
			CachePath:    filepath.Join(configDir(), "transcripts.db"),
		},
		UI: UIConfig{
			WordWrap:     80,
			ShowSubjects: true,
		},
	}
}

// configDir returns ~/.owlet, falling back to the working directory when the
// home directory cannot be determined.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".owlet"
	}
	return filepath.Join(home, ".owlet")
}

// Dir returns the owlet config directory (~/.owlet).
func Dir() string {
	return configDir()
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(configDir(), "config.toml")
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file at the default path, applies environment
// overrides, and validates. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("OWLET_SERVER_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("OWLET_TOKEN_FILE"); v != "" {
		c.Auth.TokenFile = v
	}
	if v := os.Getenv("OWLET_KID_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Chat.DefaultKidID = id
		}
	}
}

// fillDefaults replaces zero values left by a sparse config file.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = def.Server.BaseURL
	}
	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = def.Server.TimeoutSecs
	}
	if c.Server.RequestsPerSec <= 0 {
		c.Server.RequestsPerSec = def.Server.RequestsPerSec
	}
	if c.Auth.TokenFile == "" {
		c.Auth.TokenFile = def.Auth.TokenFile
	}
	if c.Chat.CachePath == "" {
		c.Chat.CachePath = def.Chat.CachePath
	}
	if c.UI.WordWrap < 0 {
		c.UI.WordWrap = def.UI.WordWrap
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks invariants that would otherwise surface as confusing
// runtime failures. All problems are reported at once.
func (c *Config) Validate() error {
	var problems []error

	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Errorf("server.base_url %q is not a valid URL", c.Server.BaseURL))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Errorf("server.base_url scheme %q must be http or https", u.Scheme))
	}

	if c.Server.TimeoutSecs > 600 {
		problems = append(problems, fmt.Errorf("server.timeout_secs %d exceeds the 600s ceiling", c.Server.TimeoutSecs))
	}
	if c.Chat.DefaultKidID < 0 {
		problems = append(problems, fmt.Errorf("chat.default_kid_id must not be negative"))
	}

	return errors.Join(problems...)
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the config to the default path atomically.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to an explicit path atomically.
func (c *Config) SaveTo(path string) error {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(sb.String()), 0644)
}
