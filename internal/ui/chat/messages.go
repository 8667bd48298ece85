// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// messages.go - tea.Msg types and the commands that produce them.
//
// Every portal call runs inside a tea.Cmd goroutine; the UI thread only
// sees the result messages. Each message carries the thread id it belongs
// to so results that land after a thread switch can be ignored.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/owlet-tui/internal/session"
)

// portalTimeout bounds every portal call made from the UI.
const portalTimeout = 60 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// threadsRefreshedMsg is delivered after a thread listing refresh.
type threadsRefreshedMsg struct {
	err error
}

// threadSelectedMsg is delivered after a thread switch and history load.
type threadSelectedMsg struct {
	threadID int64
	err      error
}

// sendFinishedMsg is delivered when a question send completes.
type sendFinishedMsg struct {
	threadID int64
	err      error
}

// optimisticShownMsg triggers a transcript re-render shortly after a send
// starts, so the pending entry is visible before the answer arrives.
type optimisticShownMsg struct{}

// threadMutatedMsg is delivered after create, rename, or delete.
type threadMutatedMsg struct {
	action string // "create", "rename", "delete"
	err    error
}

// =============================================================================
// COMMANDS
// =============================================================================

func refreshThreadsCmd(ctrl *session.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), portalTimeout)
		defer cancel()
		return threadsRefreshedMsg{err: ctrl.Refresh(ctx)}
	}
}

func selectThreadCmd(ctrl *session.Controller, threadID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), portalTimeout)
		defer cancel()
		return threadSelectedMsg{threadID: threadID, err: ctrl.SelectThread(ctx, threadID)}
	}
}

func sendQuestionCmd(ctrl *session.Controller, threadID int64, question string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), portalTimeout)
		defer cancel()
		return sendFinishedMsg{threadID: threadID, err: ctrl.SendQuestion(ctx, question)}
	}
}

func refreshAfterSendStart() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return optimisticShownMsg{}
	})
}

func createThreadCmd(ctrl *session.Controller, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), portalTimeout)
		defer cancel()
		return threadMutatedMsg{action: "create", err: ctrl.CreateThread(ctx, title)}
	}
}

func renameThreadCmd(ctrl *session.Controller, threadID int64, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), portalTimeout)
		defer cancel()
		return threadMutatedMsg{action: "rename", err: ctrl.RenameThread(ctx, threadID, title)}
	}
}

func deleteThreadCmd(ctrl *session.Controller, threadID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), portalTimeout)
		defer cancel()
		return threadMutatedMsg{action: "delete", err: ctrl.DeleteThread(ctx, threadID)}
	}
}
