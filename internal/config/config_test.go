// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8000", cfg.Server.BaseURL)
	assert.Equal(t, 30, cfg.Server.TimeoutSecs)
	assert.True(t, cfg.Auth.EncryptToken)
	assert.True(t, cfg.Chat.CacheEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.BaseURL, cfg.Server.BaseURL)
}

func TestLoadFromParsesAndFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
base_url = "https://portal.example.com"

[chat]
default_kid_id = 42
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.com", cfg.Server.BaseURL)
	assert.Equal(t, int64(42), cfg.Chat.DefaultKidID)
	// Unset values fall back to defaults.
	assert.Equal(t, 30, cfg.Server.TimeoutSecs)
	assert.NotEmpty(t, cfg.Auth.TokenFile)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OWLET_SERVER_URL", "https://env.example.com")
	t.Setenv("OWLET_KID_ID", "7")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Server.BaseURL)
	assert.Equal(t, int64(7), cfg.Chat.DefaultKidID)
}

func TestValidateRejectsBadURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg.Server.BaseURL = "ftp://example.com"
	assert.Error(t, cfg.Validate())
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://saved.example.com"
	cfg.Chat.DefaultKidID = 5
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.com", loaded.Server.BaseURL)
	assert.Equal(t, int64(5), loaded.Chat.DefaultKidID)
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, DefaultConfig().SaveTo(path))

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		if err == nil {
			select {
			case reloaded <- cfg:
			default:
			}
		}
	})
	require.NoError(t, err)
	defer w.Close()

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://changed.example.com"
	require.NoError(t, cfg.SaveTo(path))

	select {
	case got := <-reloaded:
		assert.Equal(t, "https://changed.example.com", got.Server.BaseURL)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not deliver reloaded config")
	}
}
