// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// statusbar.go - Bottom status line for the chat screen.
package components

import (
	"strings"

	"github.com/morganforge/owlet-tui/internal/ui/styles"
	"github.com/morganforge/owlet-tui/internal/util"
)

// StatusBar renders the single status line under the input: active thread,
// connection state, and the key hints.
type StatusBar struct {
	ThreadTitle string
	Sending     bool
	Loading     bool
	Cached      bool
	Width       int
}

// View renders the status line padded to the bar width.
func (b StatusBar) View() string {
	var parts []string

	if b.ThreadTitle != "" {
		parts = append(parts, util.TruncateRunes(b.ThreadTitle, 30))
	} else {
		parts = append(parts, "no thread")
	}

	switch {
	case b.Sending:
		parts = append(parts, styles.StatusIndicators.Pending+" sending")
	case b.Loading:
		parts = append(parts, styles.StatusIndicators.Pending+" loading")
	}
	if b.Cached {
		parts = append(parts, styles.StatusIndicators.Warning+" saved copy")
	}

	left := strings.Join(parts, "  |  ")
	hints := "tab: threads  enter: send  ?: help  q: quit"

	gap := b.Width - len(left) - len(hints) - 2
	if gap < 1 {
		return styles.StatusBar.Width(b.Width).Render(left)
	}
	return styles.StatusBar.Width(b.Width).Render(left + strings.Repeat(" ", gap) + hints)
}
