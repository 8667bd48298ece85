// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// error_toast.go - Non-blocking toast notifications.
//
// Failed sends and load errors surface as a transient toast rather than a
// modal dialog, so the kid can keep typing while the message is visible.
package components

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/owlet-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastError is an error toast (rose)
	ToastError ToastKind = iota
	// ToastWarning is a warning toast (amber)
	ToastWarning
	// ToastInfo is an informational toast (cyan)
	ToastInfo
)

// ErrorToastDuration is the auto-dismiss duration for error toasts.
const ErrorToastDuration = 8 * time.Second

// InfoToastDuration is the auto-dismiss duration for info toasts.
const InfoToastDuration = 4 * time.Second

var toastSeq atomic.Int64

// Toast is one transient notification.
type Toast struct {
	ID        int64
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// ToastExpiredMsg is delivered when a toast's display time elapses.
type ToastExpiredMsg struct {
	ID int64
}

// NewErrorToast creates an error toast.
func NewErrorToast(message string) Toast {
	return Toast{
		ID:        toastSeq.Add(1),
		Message:   message,
		Kind:      ToastError,
		CreatedAt: time.Now(),
		Duration:  ErrorToastDuration,
	}
}

// NewInfoToast creates an informational toast.
func NewInfoToast(message string) Toast {
	return Toast{
		ID:        toastSeq.Add(1),
		Message:   message,
		Kind:      ToastInfo,
		CreatedAt: time.Now(),
		Duration:  InfoToastDuration,
	}
}

// ExpireCmd returns the command that delivers ToastExpiredMsg after the
// toast's duration.
func (t Toast) ExpireCmd() tea.Cmd {
	id := t.ID
	return tea.Tick(t.Duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// =============================================================================
// TOAST STACK
// =============================================================================

// ToastStack holds the currently visible toasts, newest last.
type ToastStack struct {
	toasts []Toast
}

// Push adds a toast and returns its expiry command.
func (s *ToastStack) Push(t Toast) tea.Cmd {
	s.toasts = append(s.toasts, t)
	return t.ExpireCmd()
}

// Expire removes the toast with the given id, if still visible.
func (s *ToastStack) Expire(id int64) {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// DismissAll clears every visible toast.
func (s *ToastStack) DismissAll() {
	s.toasts = nil
}

// Empty reports whether any toasts are visible.
func (s *ToastStack) Empty() bool {
	return len(s.toasts) == 0
}

// View renders the toast stack for the given width.
func (s *ToastStack) View(width int) string {
	if len(s.toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(s.toasts))
	for _, t := range s.toasts {
		style := styles.Toast
		prefix := styles.StatusIndicators.Error
		switch t.Kind {
		case ToastWarning:
			style = style.BorderForeground(styles.Amber).Foreground(styles.Amber)
			prefix = styles.StatusIndicators.Warning
		case ToastInfo:
			style = style.BorderForeground(styles.Cyan).Foreground(styles.Cyan)
			prefix = styles.StatusIndicators.Active
		}
		if width > 4 {
			style = style.MaxWidth(width - 2)
		}
		rendered = append(rendered, style.Render(prefix+" "+t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
