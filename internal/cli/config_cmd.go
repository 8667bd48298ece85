// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - configuration command handlers.
package cli

import (
	"fmt"
	"strconv"

	"github.com/morganforge/owlet-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(app *App, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(app, args.JSON)
	case "set":
		return configSet(app, args.ConfigKey, args.ConfigVal)
	case "path":
		fmt.Println(config.Path())
		return nil
	default:
		return &ValidationError{
			Field:   "subcommand",
			Value:   args.Subcommand,
			Reason:  "unknown config subcommand",
			Example: "owlet config [show|set|path]",
		}
	}
}

func configShow(app *App, jsonMode bool) error {
	cfg := app.Config

	if jsonMode {
		NewJSONResponse("config show", cfg).Print()
		return nil
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	fmt.Printf("%s %s\n", RenderLabel("file:"), config.Path())
	fmt.Println()
	fmt.Printf("%s %s\n", RenderLabel("server.base_url:"), cfg.Server.BaseURL)
	fmt.Printf("%s %d\n", RenderLabel("server.timeout_secs:"), cfg.Server.TimeoutSecs)
	fmt.Printf("%s %v\n", RenderLabel("auth.encrypt_token:"), cfg.Auth.EncryptToken)
	fmt.Printf("%s %d\n", RenderLabel("chat.default_kid_id:"), cfg.Chat.DefaultKidID)
	fmt.Printf("%s %v\n", RenderLabel("chat.cache_enabled:"), cfg.Chat.CacheEnabled)
	fmt.Printf("%s %d\n", RenderLabel("ui.word_wrap:"), cfg.UI.WordWrap)
	fmt.Printf("%s %v\n", RenderLabel("ui.show_subjects:"), cfg.UI.ShowSubjects)
	return nil
}

func configSet(app *App, key, value string) error {
	if key == "" || value == "" {
		return ErrMissingArgument("key and value",
			"owlet config set server.base_url https://portal.example.com")
	}

	cfg := app.Config

	switch key {
	case "server.base_url":
		cfg.Server.BaseURL = value
	case "server.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Reason: "must be a number"}
		}
		cfg.Server.TimeoutSecs = n
	case "auth.encrypt_token":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Reason: "must be true or false"}
		}
		cfg.Auth.EncryptToken = b
	case "chat.default_kid_id":
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Reason: "must be a number"}
		}
		cfg.Chat.DefaultKidID = id
	case "chat.cache_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Reason: "must be true or false"}
		}
		cfg.Chat.CacheEnabled = b
	case "ui.word_wrap":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Reason: "must be a number"}
		}
		cfg.UI.WordWrap = n
	case "ui.show_subjects":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Field: key, Value: value, Reason: "must be true or false"}
		}
		cfg.UI.ShowSubjects = b
	default:
		return &ValidationError{
			Field:   "key",
			Value:   key,
			Reason:  "unknown config key",
			Example: "server.base_url, chat.default_kid_id, ui.word_wrap",
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("%s %s = %s\n", SuccessStyle.Render("[OK]"), key, value)
	return nil
}
