// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main TUI screen: a thread sidebar, the
// transcript viewport, and the question input, driven by the session
// controller. All portal calls run inside tea.Cmd goroutines so the UI
// never blocks; results come back as messages and stale ones are dropped.
package chat
