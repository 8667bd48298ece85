// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// threads_cmd.go - chat thread management commands.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/morganforge/owlet-tui/internal/util"
)

// HandleThreads dispatches the threads subcommands.
func HandleThreads(ctx context.Context, app *App, args Args) error {
	kidID, err := app.KidID(args)
	if err != nil {
		return err
	}

	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "list", "ls":
		return threadsList(ctx, app, kidID, args.JSON)
	case "create", "new":
		return threadsCreate(ctx, app, kidID, parser)
	case "rename":
		return threadsRename(ctx, app, kidID, parser)
	case "delete", "remove", "rm":
		return threadsDelete(ctx, app, kidID, parser, args.JSON)
	default:
		return &ValidationError{
			Field:   "subcommand",
			Value:   parser.Subcommand(),
			Reason:  "unknown threads subcommand",
			Example: "owlet threads [list|create|rename|delete]",
		}
	}
}

func threadsList(ctx context.Context, app *App, kidID int64, jsonMode bool) error {
	threads, err := app.Client.ListThreads(ctx, kidID)
	if err != nil {
		return err
	}

	if jsonMode {
		NewJSONResponse("threads list", threads).Print()
		return nil
	}

	if len(threads) == 0 {
		fmt.Println(DimStyle.Render(`No threads yet. Create one with: owlet threads create "Fractions"`))
		return nil
	}

	fmt.Println(TitleStyle.Render("Chat Threads"))
	for _, t := range threads {
		fmt.Printf("  %-4d %s\n", t.ID, util.TruncateRunes(t.Title, 60))
	}
	return nil
}

func threadsCreate(ctx context.Context, app *App, kidID int64, parser *ArgParser) error {
	title := strings.Join(parser.PositionalFrom(1), " ")
	if title == "" {
		title = parser.Flag("title")
	}
	if util.SanitizeInput(title) == "" {
		return ErrMissingArgument("title", `owlet threads create "Fractions"`)
	}

	if err := app.Client.CreateThread(ctx, kidID, util.SanitizeInput(title)); err != nil {
		return err
	}

	fmt.Printf("%s Created thread %q\n", SuccessStyle.Render("[OK]"), title)
	return nil
}

func threadsRename(ctx context.Context, app *App, kidID int64, parser *ArgParser) error {
	threadID, err := parser.PositionalInt64(1, "thread id")
	if err != nil {
		return &ValidationError{Field: "thread id", Value: parser.Positional(1), Reason: err.Error()}
	}

	title := strings.Join(parser.PositionalFrom(2), " ")
	if title == "" {
		title = parser.Flag("title")
	}
	if util.SanitizeInput(title) == "" {
		return ErrMissingArgument("title", `owlet threads rename 12 "Algebra basics"`)
	}

	if err := app.Client.RenameThread(ctx, kidID, threadID, util.SanitizeInput(title)); err != nil {
		return err
	}

	fmt.Printf("%s Renamed thread %d to %q\n", SuccessStyle.Render("[OK]"), threadID, title)
	return nil
}

func threadsDelete(ctx context.Context, app *App, kidID int64, parser *ArgParser, jsonMode bool) error {
	threadID, err := parser.PositionalInt64(1, "thread id")
	if err != nil {
		return &ValidationError{Field: "thread id", Value: parser.Positional(1), Reason: err.Error()}
	}

	confirmed, err := RequireConfirmation(parser.BoolFlag("yes"),
		fmt.Sprintf("delete thread %d and its history", threadID), jsonMode)
	if err != nil {
		return err
	}
	if !confirmed {
		ShowCancellationMessage()
		return nil
	}

	if err := app.Client.DeleteThread(ctx, kidID, threadID); err != nil {
		return err
	}

	// Drop the stale cached transcript too.
	if cache := app.OpenCache(); cache != nil {
		_ = cache.Delete(threadID)
		cache.Close()
	}

	fmt.Printf("%s Deleted thread %d\n", SuccessStyle.Render("[OK]"), threadID)
	return nil
}
