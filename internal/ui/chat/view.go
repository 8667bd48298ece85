// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// view.go - Rendering for the chat screen.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/owlet-tui/internal/model"
	"github.com/morganforge/owlet-tui/internal/ui/components"
	"github.com/morganforge/owlet-tui/internal/ui/styles"
	"github.com/morganforge/owlet-tui/internal/util"
)

// View renders the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := styles.AppTitle.Render("owlet") + "  " +
		styles.HelpText.Render(fmt.Sprintf("kid #%d", m.ctrl.KidID()))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(),
		lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			m.renderInput(),
		),
	)

	sections := []string{header, body}
	if m.spinner.Active() {
		sections = append(sections, m.spinner.View())
	}
	sections = append(sections, m.renderStatusBar())
	if !m.toasts.Empty() {
		sections = append(sections, m.toasts.View(m.width))
	}

	screen := lipgloss.JoinVertical(lipgloss.Left, sections...)

	switch m.mode {
	case modeNewThread:
		return m.overlayDialog(screen, m.renderTitleDialog("New thread"))
	case modeRenameThread:
		return m.overlayDialog(screen, m.renderTitleDialog("Rename thread"))
	case modeConfirmDelete:
		return m.overlayDialog(screen, m.renderDeleteDialog())
	case modeHelp:
		return m.overlayDialog(screen, m.renderHelp())
	}
	return screen
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) renderSidebar() string {
	rows := []string{styles.SidebarHeader.Render("Threads")}

	threads := m.ctrl.Threads()
	if len(threads) == 0 {
		rows = append(rows, styles.EmptyHint.Render("no threads yet\npress n to start one"))
	}

	active := m.ctrl.ActiveThreadID()
	for i, t := range threads {
		title := util.TruncateRunes(t.DisplayTitle(), styles.SidebarWidth-4)
		marker := "  "
		if t.ID == active {
			marker = "* "
		}
		line := marker + title

		style := styles.ThreadRow
		switch {
		case i == m.cursor && m.focus == focusSidebar:
			style = styles.ThreadRowSelected
		case t.ID == active && m.ctrl.IsSending():
			style = styles.ThreadRowBusy
		}
		rows = append(rows, style.Render(line))
	}

	height := m.viewport.Height + 4
	return styles.Sidebar.Height(height).Render(strings.Join(rows, "\n"))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript formats the active thread's messages for the viewport.
func (m Model) renderTranscript() string {
	msgs := m.ctrl.Transcript()
	if len(msgs) == 0 {
		if m.ctrl.ActiveThreadID() == 0 {
			return styles.EmptyHint.Render("Pick a thread on the left, or press n to start one.")
		}
		if m.ctrl.IsLoadingHistory() {
			return styles.EmptyHint.Render("Loading...")
		}
		return styles.EmptyHint.Render("No questions here yet. Ask away!")
	}

	width := m.transcriptWidth() - 2
	if width < 10 {
		width = 10
	}

	var blocks []string
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg, width))
	}
	if m.ctrl.IsShowingCached() {
		blocks = append(blocks,
			styles.SubjectTag.Render("(saved copy - the portal could not be reached)"))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderMessage(msg *model.Message, width int) string {
	question := styles.Question.Width(width).Render("you: " + msg.Question)

	if msg.IsPending() {
		return question + "\n" + styles.PendingMarker.Render("  waiting for your tutor...")
	}

	answer := styles.Answer.Width(width).Render("tutor: " + msg.Answer)
	out := question + "\n" + answer
	if msg.Subject != "" {
		out += "\n" + styles.SubjectTag.Render("  ["+msg.Subject+"]")
	}
	return out
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

func (m Model) renderInput() string {
	box := styles.InputBox
	if m.focus == focusInput {
		box = styles.InputBoxFocused
	}
	return box.Width(m.transcriptWidth()).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	title := ""
	if t, ok := m.ctrl.ActiveThread(); ok {
		title = t.DisplayTitle()
	}
	bar := components.StatusBar{
		ThreadTitle: title,
		Sending:     m.ctrl.IsSending(),
		Loading:     m.ctrl.IsLoadingHistory(),
		Cached:      m.ctrl.IsShowingCached(),
		Width:       m.width,
	}
	return bar.View()
}

// =============================================================================
// DIALOGS
// =============================================================================

func (m Model) renderTitleDialog(prompt string) string {
	content := styles.AppTitle.Render(prompt) + "\n\n" +
		m.titleEdit.View() + "\n\n" +
		styles.HelpText.Render("enter: save  esc: cancel")
	return styles.Dialog.Render(content)
}

func (m Model) renderDeleteDialog() string {
	title := util.TruncateRunes(m.deleteTarget.DisplayTitle(), 40)
	content := styles.AppTitle.Render("Delete thread?") + "\n\n" +
		fmt.Sprintf("%q and its whole transcript will be removed.", title) + "\n\n" +
		styles.HelpText.Render("y: delete  any other key: cancel")
	return styles.Dialog.Render(content)
}

func (m Model) renderHelp() string {
	lines := []string{
		styles.AppTitle.Render("Keys"),
		"",
		"enter      send question / open thread",
		"tab        switch between input and threads",
		"up/down    move in the thread list (also k/j)",
		"n          new thread",
		"r          rename thread",
		"d          delete thread",
		"R          reload threads",
		"pgup/pgdn  scroll the transcript",
		"q          quit (from the thread list)",
		"ctrl+c     quit from anywhere",
		"",
		styles.HelpText.Render("press any key to close"),
	}
	return styles.Dialog.Render(strings.Join(lines, "\n"))
}

// overlayDialog centers a dialog over the screen. lipgloss has no true
// overlay, so the dialog replaces the screen content while it is open.
func (m Model) overlayDialog(_, dialog string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
