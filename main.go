// owlet - a terminal client for the family tutoring portal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/owlet-tui/internal/cli"
	"github.com/morganforge/owlet-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	// Version and help need no config or network.
	switch cmd {
	case cli.CmdVersion:
		cli.HandleVersion(args)
		return
	case cli.CmdHelp:
		cli.HandleHelp()
		return
	}

	app, err := cli.NewApp(args)
	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}
	ctx := context.Background()

	switch cmd {
	case cli.CmdLogin:
		err = cli.HandleLogin(ctx, app, args)
	case cli.CmdLogout:
		err = cli.HandleLogout(app, args)
	case cli.CmdWhoami:
		err = cli.HandleWhoami(ctx, app, args)
	case cli.CmdRegister:
		err = cli.HandleRegister(ctx, app, args)
	case cli.CmdKids:
		err = cli.HandleKids(ctx, app, args)
	case cli.CmdThreads:
		err = cli.HandleThreads(ctx, app, args)
	case cli.CmdAsk:
		err = cli.HandleAsk(ctx, app, args)
	case cli.CmdChat:
		err = cli.HandleChat(ctx, app, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(app, args)
	default:
		runTUI(app, args)
		return
	}
	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}
}

// runTUI starts the full-screen chat interface.
func runTUI(app *cli.App, args cli.Args) {
	if err := cli.RequiresTTY("the chat screen"); err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}

	kidID, err := app.KidID(args)
	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}

	cache := app.OpenCache()
	defer func() {
		if cache != nil {
			cache.Close()
		}
	}()

	ctrl := app.NewSession(kidID, cache)
	m := chat.New(ctrl, app.Config.UI.WordWrap)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running owlet: %v\n", err)
		os.Exit(1)
	}
}
