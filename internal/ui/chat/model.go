// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// model.go - The chat screen model and its construction.
package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/owlet-tui/internal/model"
	"github.com/morganforge/owlet-tui/internal/session"
	"github.com/morganforge/owlet-tui/internal/ui/components"
	"github.com/morganforge/owlet-tui/internal/ui/styles"
)

// =============================================================================
// MODES AND FOCUS
// =============================================================================

// mode is the screen's interaction mode.
type mode int

const (
	modeChat          mode = iota // normal chatting
	modeNewThread                 // typing a title for a new thread
	modeRenameThread              // typing a new title for the selected thread
	modeConfirmDelete             // [y/N] dialog for thread deletion
	modeHelp                      // full key help overlay
)

// focusArea is which pane receives navigation keys in modeChat.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea model for the chat screen.
type Model struct {
	ctrl *session.Controller
	keys keyMap

	// Panes
	viewport  viewport.Model
	input     textinput.Model
	titleEdit textinput.Model
	spinner   components.Spinner
	toasts    components.ToastStack

	// State
	mode    mode
	focus   focusArea
	cursor  int // sidebar row index
	width   int
	height  int
	ready   bool // first WindowSizeMsg received
	wrapCol int

	// confirmDelete target
	deleteTarget model.Thread
}

// New creates the chat screen over a wired session controller.
func New(ctrl *session.Controller, wordWrap int) Model {
	input := textinput.New()
	input.Placeholder = "Ask your tutor..."
	input.CharLimit = 2000
	input.Prompt = "> "
	input.Focus()

	titleEdit := textinput.New()
	titleEdit.Placeholder = "Thread title"
	titleEdit.CharLimit = 120
	titleEdit.Prompt = "> "

	if wordWrap <= 0 {
		wrapDefault := 80
		wordWrap = wrapDefault
	}

	return Model{
		ctrl:      ctrl,
		keys:      defaultKeyMap(),
		input:     input,
		titleEdit: titleEdit,
		spinner:   components.NewSpinner(),
		wrapCol:   wordWrap,
	}
}

// Init loads the thread listing on startup.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		refreshThreadsCmd(m.ctrl),
		textinput.Blink,
	)
}

// =============================================================================
// DERIVED STATE
// =============================================================================

// selectedThread returns the thread under the sidebar cursor.
func (m *Model) selectedThread() (model.Thread, bool) {
	threads := m.ctrl.Threads()
	if m.cursor < 0 || m.cursor >= len(threads) {
		return model.Thread{}, false
	}
	return threads[m.cursor], true
}

// clampCursor keeps the sidebar cursor inside the listing after refreshes.
func (m *Model) clampCursor() {
	n := len(m.ctrl.Threads())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// cursorToActive moves the sidebar cursor onto the active thread.
func (m *Model) cursorToActive() {
	active := m.ctrl.ActiveThreadID()
	if active == 0 {
		return
	}
	for i, t := range m.ctrl.Threads() {
		if t.ID == active {
			m.cursor = i
			return
		}
	}
}

// transcriptWidth is the width available to the transcript viewport.
func (m *Model) transcriptWidth() int {
	w := m.width - styles.SidebarWidth - 3
	if w < 20 {
		w = 20
	}
	if w > m.wrapCol {
		w = m.wrapCol
	}
	return w
}

// resize recomputes pane sizes after a window size change.
func (m *Model) resize() {
	headerLines := 1
	inputLines := 3
	statusLines := 1

	vpHeight := m.height - headerLines - inputLines - statusLines - 1
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(m.transcriptWidth(), vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.transcriptWidth()
		m.viewport.Height = vpHeight
	}

	m.input.Width = m.width - styles.SidebarWidth - 8
	m.refreshTranscript()
}

// refreshTranscript re-renders the transcript into the viewport and
// follows the bottom.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
