// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for owlet.
//
// Configuration lives in TOML at ~/.owlet/config.toml, with built-in
// defaults and a small set of environment variable overrides
// (OWLET_SERVER_URL, OWLET_TOKEN_FILE, OWLET_KID_ID). A watcher based on
// fsnotify can reload the file when it changes on disk so a running TUI
// picks up edits without a restart.
package config
