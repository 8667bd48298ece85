// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the owlet TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark
// detection; components share one palette so the sidebar, transcript,
// and status bar stay visually consistent.
package styles
