// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-based chat command handler for the owlet CLI.
//
// Handles "owlet chat", a REPL for terminals where the full TUI is
// unwanted (ssh sessions, screen readers, scripts driving a pty).
//
// Interactive Commands (during chat):
//   /threads            List threads
//   /switch ID          Switch to a thread
//   /new TITLE          Create a thread and switch to it
//   /history            Reprint the transcript
//   /help, /h           Show available commands
//   /quit, /q           Exit chat
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/morganforge/owlet-tui/internal/api"
	"github.com/morganforge/owlet-tui/internal/config"
	"github.com/morganforge/owlet-tui/internal/session"
	"github.com/morganforge/owlet-tui/internal/util"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// chatInput wraps liner with persistent input history, so arrow keys
// recall questions across sessions.
type chatInput struct {
	line        *liner.State
	historyFile string
}

func newChatInput() *chatInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	in := &chatInput{
		line:        line,
		historyFile: filepath.Join(config.Dir(), "chat_history"),
	}
	if f, err := os.Open(in.historyFile); err == nil {
		in.line.ReadHistory(f)
		f.Close()
	}
	return in
}

func (c *chatInput) read(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

func (c *chatInput) close() {
	if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		c.line.WriteHistory(f)
		f.Close()
	}
	c.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChat runs the line-based chat REPL.
func HandleChat(ctx context.Context, app *App, args Args) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}

	kidID, err := app.KidID(args)
	if err != nil {
		return err
	}

	cache := app.OpenCache()
	if cache != nil {
		defer cache.Close()
	}
	ctrl := app.NewSession(kidID, cache)

	if err := ctrl.Refresh(ctx); err != nil {
		return err
	}

	// Start on the requested thread, else the most recent one.
	switch {
	case args.ThreadID != 0:
		if err := ctrl.SelectThread(ctx, args.ThreadID); err != nil {
			return err
		}
	default:
		if threads := ctrl.Threads(); len(threads) > 0 {
			if err := ctrl.SelectThread(ctx, threads[len(threads)-1].ID); err != nil {
				return err
			}
		}
	}

	if !args.Quiet {
		printChatWelcome(ctrl)
	}

	input := newChatInput()
	defer input.close()

	for {
		line, err := input.read(chatPrompt(ctrl))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue // Ctrl+C clears the line, not the session
			}
			// io.EOF on Ctrl+D
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := handleChatCommand(ctx, ctrl, line); quit {
				return nil
			}
			continue
		}

		if err := askInREPL(ctx, app, ctrl, line); err != nil {
			fmt.Printf("%s %s\n", ErrorStyle.Render("[ERROR]"), errorText(err))
		}
	}
}

// askInREPL sends one question and prints the new answer.
func askInREPL(ctx context.Context, app *App, ctrl *session.Controller, question string) error {
	if ctrl.ActiveThreadID() == 0 {
		return errors.New("no thread selected; use /new TITLE or /switch ID")
	}

	fmt.Println(DimStyle.Render("Thinking..."))
	if err := ctrl.SendQuestion(ctx, question); err != nil {
		return err
	}

	transcript := ctrl.Transcript()
	if len(transcript) == 0 {
		return errors.New("no answer returned")
	}
	last := transcript[len(transcript)-1]

	wrap := app.Config.UI.WordWrap
	if w := GetTerminalWidth(); w < wrap {
		wrap = w
	}
	fmt.Print(renderMarkdown(last.Answer, wrap))
	return nil
}

// handleChatCommand processes a /command. Returns true to exit the REPL.
func handleChatCommand(ctx context.Context, ctrl *session.Controller, line string) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println("  /threads        List threads")
		fmt.Println("  /switch ID      Switch to a thread")
		fmt.Println("  /new TITLE      Create a thread and switch to it")
		fmt.Println("  /history        Reprint the transcript")
		fmt.Println("  /quit, /q       Exit chat")

	case "/threads":
		threads := ctrl.Threads()
		if len(threads) == 0 {
			fmt.Println(DimStyle.Render("No threads yet. Create one with /new TITLE"))
			break
		}
		for _, t := range threads {
			marker := "  "
			if t.ID == ctrl.ActiveThreadID() {
				marker = "* "
			}
			fmt.Printf("%s%-4d %s\n", marker, t.ID, util.TruncateRunes(t.Title, 60))
		}

	case "/switch":
		if len(parts) < 2 {
			fmt.Println(DimStyle.Render("Usage: /switch ID"))
			break
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			fmt.Println(DimStyle.Render("Thread id must be a number"))
			break
		}
		if err := ctrl.SelectThread(ctx, id); err != nil {
			fmt.Printf("%s %s\n", ErrorStyle.Render("[ERROR]"), errorText(err))
			break
		}
		printTranscript(ctrl)

	case "/new":
		title := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
		if title == "" {
			fmt.Println(DimStyle.Render("Usage: /new TITLE"))
			break
		}
		if err := ctrl.CreateThread(ctx, title); err != nil {
			fmt.Printf("%s %s\n", ErrorStyle.Render("[ERROR]"), errorText(err))
			break
		}
		threads := ctrl.Threads()
		if len(threads) > 0 {
			newest := threads[len(threads)-1]
			if err := ctrl.SelectThread(ctx, newest.ID); err == nil {
				fmt.Printf("Switched to %q\n", newest.Title)
			}
		}

	case "/history":
		printTranscript(ctrl)

	default:
		fmt.Println(DimStyle.Render("Unknown command. Try /help"))
	}
	return false
}

// printTranscript reprints the active thread's transcript.
func printTranscript(ctrl *session.Controller) {
	transcript := ctrl.Transcript()
	if len(transcript) == 0 {
		fmt.Println(DimStyle.Render("(empty thread)"))
		return
	}
	for _, msg := range transcript {
		fmt.Printf("%s %s\n", WarningStyle.Render("you:"), msg.Question)
		if msg.Answer != "" {
			fmt.Printf("%s %s\n", SuccessStyle.Render("tutor:"), msg.Answer)
		}
	}
	if ctrl.IsShowingCached() {
		fmt.Println(DimStyle.Render("(showing saved copy; portal unreachable)"))
	}
}

// printChatWelcome shows the session banner.
func printChatWelcome(ctrl *session.Controller) {
	fmt.Println(TitleStyle.Render("owlet chat"))
	if thread, ok := ctrl.ActiveThread(); ok {
		fmt.Printf("Thread: %s\n", thread.DisplayTitle())
	} else {
		fmt.Println(DimStyle.Render("No thread selected. Use /new TITLE to start one."))
	}
	fmt.Println(DimStyle.Render("Type /help for commands, Ctrl+D to exit."))
	fmt.Println()
}

// chatPrompt renders the REPL prompt with the active thread title.
func chatPrompt(ctrl *session.Controller) string {
	if thread, ok := ctrl.ActiveThread(); ok {
		return fmt.Sprintf("[%s] > ", util.TruncateRunes(thread.Title, 20))
	}
	return "> "
}

// errorText maps session guard errors to friendly text.
func errorText(err error) string {
	switch {
	case errors.Is(err, session.ErrAlreadyPending):
		return "still waiting on the previous question"
	case errors.Is(err, session.ErrNoActiveThread):
		return "no thread selected; use /new TITLE or /switch ID"
	case errors.Is(err, session.ErrUnknownThread):
		return "no thread with that id; see /threads"
	default:
		return api.UserMessage(err)
	}
}
