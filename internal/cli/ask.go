// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command handler for the owlet CLI.
//
// Handles "owlet ask" which submits a single question on a thread and
// prints the rendered answer.
//
// Examples:
//   owlet ask "What is a numerator?"          Ask on a fresh thread
//   owlet ask "Explain fractions" --thread 12 Ask on an existing thread
//   owlet ask "..." --kid 3                   Ask as a specific kid
package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/morganforge/owlet-tui/internal/util"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

var (
	markdownRenderer *glamour.TermRenderer
	rendererOnce     sync.Once
)

// renderMarkdown renders tutor answers as terminal markdown, falling back
// to plain text when the renderer is unavailable (piped output, odd TERM).
func renderMarkdown(text string, wrap int) string {
	rendererOnce.Do(func() {
		if !IsStdoutTTY() {
			return
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err == nil {
			markdownRenderer = r
		}
	})

	if markdownRenderer == nil {
		return text
	}
	out, err := markdownRenderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// titleFromQuestion derives a thread title from the first words of a
// question, rune-truncated for the sidebar.
func titleFromQuestion(question string) string {
	words := strings.Fields(question)
	if len(words) > 6 {
		words = words[:6]
	}
	return util.TruncateRunes(strings.Join(words, " "), 60)
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAsk handles the "ask" command: submit one question, print the
// answer, exit.
func HandleAsk(ctx context.Context, app *App, args Args) error {
	question := util.SanitizeInput(args.Query)
	if question == "" {
		return ErrMissingArgument("question", `owlet ask "What is a numerator?"`)
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

	threadID := args.ThreadID
	if threadID == 0 {
		// No thread given: start a fresh one titled from the question.
		if err := ctrl.CreateThread(ctx, titleFromQuestion(question)); err != nil {
			return err
		}
		threads := ctrl.Threads()
		if len(threads) == 0 {
			return &NotFoundError{Resource: "thread", ID: "just created"}
		}
		threadID = threads[len(threads)-1].ID
	}

	if err := ctrl.SelectThread(ctx, threadID); err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Println(DimStyle.Render("Thinking..."))
	}

	if err := ctrl.SendQuestion(ctx, question); err != nil {
		return err
	}

	transcript := ctrl.Transcript()
	if len(transcript) == 0 {
		return fmt.Errorf("no answer returned")
	}
	last := transcript[len(transcript)-1]

	wrap := app.Config.UI.WordWrap
	if w := GetTerminalWidth(); w < wrap {
		wrap = w
	}
	fmt.Print(renderMarkdown(last.Answer, wrap))

	if app.Config.UI.ShowSubjects && last.Subject != "" {
		fmt.Println(DimStyle.Render("subject: " + last.Subject))
	}
	return nil
}
