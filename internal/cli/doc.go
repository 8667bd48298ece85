// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements argument parsing and the command handlers for the
// owlet command line. The default command (no arguments) launches the chat
// TUI; the rest are one-shot subcommands for account, kid, and thread
// management plus a line-based chat REPL for terminals where the TUI is
// unwanted.
package cli
