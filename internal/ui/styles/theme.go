// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// theme.go - Shared lipgloss styles for the owlet TUI components.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// LAYOUT
// =============================================================================

// SidebarWidth is the fixed width of the thread sidebar.
const SidebarWidth = 28

var (
	// AppTitle styles the header line.
	AppTitle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	// Sidebar frames the thread list.
	Sidebar = lipgloss.NewStyle().
		Width(SidebarWidth).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay)

	// SidebarHeader styles the sidebar title row.
	SidebarHeader = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Bold(true).
			Padding(0, 1)

	// ThreadRow styles an unselected thread line.
	ThreadRow = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Padding(0, 1)

	// ThreadRowSelected styles the active thread line.
	ThreadRowSelected = lipgloss.NewStyle().
				Foreground(Cyan).
				Background(SelectionBg).
				Bold(true).
				Padding(0, 1)

	// ThreadRowBusy marks a thread with a send in flight.
	ThreadRowBusy = lipgloss.NewStyle().
			Foreground(Amber).
			Padding(0, 1)
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

var (
	// Question styles the kid's question lines.
	Question = lipgloss.NewStyle().
			Foreground(QuestionBubbleFg).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(QuestionBubbleBorder).
			PaddingLeft(1)

	// Answer styles the tutor's answer lines.
	Answer = lipgloss.NewStyle().
		Foreground(AnswerBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(AnswerBubbleBorder).
		PaddingLeft(1)

	// PendingMarker styles the "waiting for answer" line.
	PendingMarker = lipgloss.NewStyle().
			Foreground(Amber).
			Italic(true)

	// SubjectTag styles the subject label under an answer.
	SubjectTag = lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true)

	// EmptyHint styles the placeholder shown for empty threads.
	EmptyHint = lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true).
			Padding(1, 2)
)

// =============================================================================
// CHROME
// =============================================================================

var (
	// InputBox frames the question input.
	InputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Overlay).
			Padding(0, 1)

	// InputBoxFocused highlights the input when it has focus.
	InputBoxFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Cyan).
			Padding(0, 1)

	// StatusBar styles the bottom status line.
	StatusBar = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Background(SurfaceDim).
			Padding(0, 1)

	// StatusBarAlert styles error text inside the status bar.
	StatusBarAlert = lipgloss.NewStyle().
			Foreground(Rose).
			Background(SurfaceDim).
			Bold(true)

	// Toast styles the transient error popup.
	Toast = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	// Dialog styles the confirmation dialog box.
	Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Amber).
		Padding(1, 2)

	// HelpText styles the key hint line.
	HelpText = lipgloss.NewStyle().
			Foreground(TextMuted)
)
