// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// kids_cmd.go - kid profile management commands.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/morganforge/owlet-tui/internal/api"
)

// HandleKids dispatches the kids subcommands.
func HandleKids(ctx context.Context, app *App, args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "list", "ls":
		return kidsList(ctx, app, parser, args.JSON)
	case "add", "create":
		return kidsAdd(ctx, app, parser, args.JSON)
	case "show":
		return kidsShow(ctx, app, parser, args.JSON)
	case "update", "edit":
		return kidsUpdate(ctx, app, parser)
	case "remove", "delete", "rm":
		return kidsRemove(ctx, app, parser, args.JSON)
	default:
		return &ValidationError{
			Field:   "subcommand",
			Value:   parser.Subcommand(),
			Reason:  "unknown kids subcommand",
			Example: "owlet kids [list|add|show|update|remove]",
		}
	}
}

func kidsList(ctx context.Context, app *App, parser *ArgParser, jsonMode bool) error {
	params := &api.ListParams{
		Search: parser.Flag("search"),
		SortBy: parser.Flag("sort"),
	}

	kids, err := app.Client.ListKids(ctx, params)
	if err != nil {
		return err
	}

	if jsonMode {
		NewJSONResponse("kids list", kids).Print()
		return nil
	}

	if len(kids) == 0 {
		fmt.Println(DimStyle.Render("No kid profiles yet. Add one with: owlet kids add NAME"))
		return nil
	}

	fmt.Println(TitleStyle.Render("Kid Profiles"))
	for _, kid := range kids {
		fmt.Printf("  %-4d %-20s age %-3d %s\n", kid.ID, kid.Name, kid.Age, DimStyle.Render(kid.School))
	}
	return nil
}

func kidsAdd(ctx context.Context, app *App, parser *ArgParser, jsonMode bool) error {
	name := parser.Positional(1)
	if name == "" {
		return ErrMissingArgument("name", `owlet kids add "Sam" --age 9 --standard 4`)
	}

	age := 0
	if raw := parser.Flag("age"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return &ValidationError{Field: "age", Value: raw, Reason: "must be a positive number"}
		}
		age = parsed
	}

	msg, err := app.Client.CreateKid(ctx, api.KidRequest{
		Name:     name,
		Age:      age,
		Gender:   parser.Flag("gender"),
		School:   parser.Flag("school"),
		Standard: parser.Flag("standard"),
	})
	if err != nil {
		return err
	}

	if jsonMode {
		NewJSONResponse("kids add", msg).Print()
		return nil
	}

	fmt.Printf("%s Added kid profile %q", SuccessStyle.Render("[OK]"), name)
	if msg.ID != nil {
		fmt.Printf(" (id %d)", *msg.ID)
	}
	fmt.Println()
	return nil
}

func kidsShow(ctx context.Context, app *App, parser *ArgParser, jsonMode bool) error {
	kidID, err := parser.PositionalInt64(1, "kid id")
	if err != nil {
		return &ValidationError{Field: "kid id", Value: parser.Positional(1), Reason: err.Error()}
	}

	kid, err := app.Client.GetKid(ctx, kidID)
	if err != nil {
		return err
	}

	if jsonMode {
		NewJSONResponse("kids show", kid).Print()
		return nil
	}

	fmt.Printf("%s %d\n", RenderLabel("ID:"), kid.ID)
	fmt.Printf("%s %s\n", RenderLabel("Name:"), kid.Name)
	fmt.Printf("%s %d\n", RenderLabel("Age:"), kid.Age)
	fmt.Printf("%s %s\n", RenderLabel("School:"), kid.School)
	fmt.Printf("%s %s\n", RenderLabel("Standard:"), kid.Standard)
	return nil
}

func kidsUpdate(ctx context.Context, app *App, parser *ArgParser) error {
	kidID, err := parser.PositionalInt64(1, "kid id")
	if err != nil {
		return &ValidationError{Field: "kid id", Value: parser.Positional(1), Reason: err.Error()}
	}

	// The portal replaces the whole profile, so start from the current one
	// and overlay the provided flags.
	kid, err := app.Client.GetKid(ctx, kidID)
	if err != nil {
		return err
	}

	req := api.KidRequest{
		Name:     parser.FlagOrDefault("name", kid.Name),
		Age:      kid.Age,
		Gender:   parser.FlagOrDefault("gender", kid.Gender),
		School:   parser.FlagOrDefault("school", kid.School),
		Standard: parser.FlagOrDefault("standard", kid.Standard),
	}
	if raw := parser.Flag("age"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return &ValidationError{Field: "age", Value: raw, Reason: "must be a positive number"}
		}
		req.Age = parsed
	}

	if err := app.Client.UpdateKid(ctx, kidID, req); err != nil {
		return err
	}

	fmt.Printf("%s Updated kid profile %d\n", SuccessStyle.Render("[OK]"), kidID)
	return nil
}

func kidsRemove(ctx context.Context, app *App, parser *ArgParser, jsonMode bool) error {
	kidID, err := parser.PositionalInt64(1, "kid id")
	if err != nil {
		return &ValidationError{Field: "kid id", Value: parser.Positional(1), Reason: err.Error()}
	}

	kid, err := app.Client.GetKid(ctx, kidID)
	if err != nil {
		return err
	}

	confirmed, err := RequireConfirmation(parser.BoolFlag("yes"),
		fmt.Sprintf("remove kid profile %q and all of its chats", kid.Name), jsonMode)
	if err != nil {
		return err
	}
	if !confirmed {
		ShowCancellationMessage()
		return nil
	}

	if err := app.Client.DeleteKid(ctx, kidID); err != nil {
		return err
	}

	fmt.Printf("%s Removed kid profile %q\n", SuccessStyle.Render("[OK]"), kid.Name)
	return nil
}
