// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// update.go - Message handling for the chat screen.
package chat

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/owlet-tui/internal/api"
	"github.com/morganforge/owlet-tui/internal/session"
	"github.com/morganforge/owlet-tui/internal/ui/components"
)

// Update is the single entry point for all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case threadsRefreshedMsg:
		if msg.err != nil {
			return m, m.toasts.Push(components.NewErrorToast(api.UserMessage(msg.err)))
		}
		m.clampCursor()
		// Auto-select the first thread on startup.
		if m.ctrl.ActiveThreadID() == 0 {
			if threads := m.ctrl.Threads(); len(threads) > 0 {
				return m, tea.Batch(
					m.spinner.Start("Loading"),
					selectThreadCmd(m.ctrl, threads[0].ID),
				)
			}
		}
		return m, nil

	case threadSelectedMsg:
		// A switch that raced a newer switch: the controller already
		// discarded the stale history, just skip the UI work.
		if msg.threadID != m.ctrl.ActiveThreadID() {
			return m, nil
		}
		m.spinner.Stop()
		m.cursorToActive()
		m.refreshTranscript()
		if msg.err != nil {
			cmd := m.toasts.Push(components.NewErrorToast(api.UserMessage(msg.err)))
			if m.ctrl.IsShowingCached() {
				return m, tea.Batch(cmd,
					m.toasts.Push(components.NewInfoToast("showing a saved copy")))
			}
			return m, cmd
		}
		return m, nil

	case sendFinishedMsg:
		if msg.threadID == m.ctrl.ActiveThreadID() {
			m.spinner.Stop()
			m.refreshTranscript()
		}
		if msg.err != nil && !errors.Is(msg.err, session.ErrAlreadyPending) {
			return m, m.toasts.Push(components.NewErrorToast(api.UserMessage(msg.err)))
		}
		return m, nil

	case threadMutatedMsg:
		m.spinner.Stop()
		if msg.err != nil {
			return m, m.toasts.Push(components.NewErrorToast(api.UserMessage(msg.err)))
		}
		m.clampCursor()
		m.refreshTranscript()
		return m, nil

	case optimisticShownMsg:
		m.refreshTranscript()
		return m, nil

	case components.ToastExpiredMsg:
		m.toasts.Expire(msg.ID)
		return m, nil
	}

	// Spinner ticks and anything else.
	var cmds []tea.Cmd
	if cmd := m.spinner.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C quits from anywhere.
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.mode {
	case modeNewThread, modeRenameThread:
		return m.handleTitleEntryKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	case modeHelp:
		m.mode = modeChat
		return m, nil
	}

	// modeChat
	switch m.focus {
	case focusInput:
		return m.handleInputKey(msg)
	default:
		return m.handleSidebarKey(msg)
	}
}

// handleInputKey handles keys while the question input has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.FocusSwap):
		m.focus = focusSidebar
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		text := m.input.Value()
		if !m.ctrl.CanSend(text) {
			// Disabled send: no thread, blank input, or one in flight.
			return m, nil
		}
		threadID := m.ctrl.ActiveThreadID()
		m.input.Reset()
		cmd := sendQuestionCmd(m.ctrl, threadID, text)
		// The optimistic entry appears once the send starts; re-render
		// shortly after so the user sees it without waiting for the answer.
		m.refreshTranscript()
		return m, tea.Batch(m.spinner.Start("Thinking"), cmd, refreshAfterSendStart())

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSidebarKey handles keys while the thread sidebar has focus.
func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.FocusSwap):
		m.focus = focusInput
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.ctrl.Threads())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Send):
		thread, ok := m.selectedThread()
		if !ok {
			return m, nil
		}
		m.focus = focusInput
		m.input.Focus()
		return m, tea.Batch(
			m.spinner.Start("Loading"),
			selectThreadCmd(m.ctrl, thread.ID),
		)

	case key.Matches(msg, m.keys.NewThread):
		m.mode = modeNewThread
		m.titleEdit.Reset()
		m.titleEdit.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Rename):
		thread, ok := m.selectedThread()
		if !ok {
			return m, nil
		}
		m.mode = modeRenameThread
		m.titleEdit.SetValue(thread.Title)
		m.titleEdit.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		thread, ok := m.selectedThread()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.deleteTarget = thread
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(m.spinner.Start("Reloading"), refreshThreadsCmd(m.ctrl))

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		return m, nil
	}

	return m, nil
}

// handleTitleEntryKey handles the new/rename title prompt.
func (m Model) handleTitleEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeChat
		m.titleEdit.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		title := m.titleEdit.Value()
		creating := m.mode == modeNewThread
		m.mode = modeChat
		m.titleEdit.Blur()

		if creating {
			return m, tea.Batch(m.spinner.Start("Creating"), createThreadCmd(m.ctrl, title))
		}
		thread, ok := m.selectedThread()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.spinner.Start("Renaming"),
			renameThreadCmd(m.ctrl, thread.ID, title))
	}

	var cmd tea.Cmd
	m.titleEdit, cmd = m.titleEdit.Update(msg)
	return m, cmd
}

// handleConfirmKey handles the delete confirmation dialog.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		m.mode = modeChat
		return m, tea.Batch(m.spinner.Start("Deleting"),
			deleteThreadCmd(m.ctrl, m.deleteTarget.ID))
	}
	// Anything else cancels.
	m.mode = modeChat
	return m, nil
}
