// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login, logout, whoami, and register commands.
package cli

import (
	"context"
	"fmt"

	"github.com/morganforge/owlet-tui/internal/api"
)

// HandleLogin signs in and stores the session token.
func HandleLogin(ctx context.Context, app *App, args Args) error {
	if err := RequiresTTY("log in"); err != nil {
		return err
	}

	email := NewArgParser(args.Raw).Flag("email")
	if email == "" {
		var err error
		email, err = ReadLine("Email: ")
		if err != nil {
			return err
		}
	}
	password, err := ReadPassword("Password: ")
	if err != nil {
		return err
	}

	resp, err := app.Client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := app.Tokens.Save(resp.Token); err != nil {
		return fmt.Errorf("saving session token: %w", err)
	}

	// Confirm the token works and greet by name.
	info, err := app.Client.UserInfo(ctx)
	if err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Printf("%s Signed in as %s <%s>\n",
			SuccessStyle.Render("[OK]"), info.Name, info.Email)
	}
	return nil
}

// HandleLogout forgets the stored session token.
func HandleLogout(app *App, args Args) error {
	if err := app.Tokens.Clear(); err != nil {
		return fmt.Errorf("clearing session token: %w", err)
	}
	if !args.Quiet {
		fmt.Println("Signed out.")
	}
	return nil
}

// HandleWhoami shows the signed-in account.
func HandleWhoami(ctx context.Context, app *App, args Args) error {
	info, err := app.Client.UserInfo(ctx)
	if err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("whoami", info).Print()
		return nil
	}

	fmt.Printf("%s %s\n", RenderLabel("Name:"), info.Name)
	fmt.Printf("%s %s\n", RenderLabel("Email:"), info.Email)
	fmt.Printf("%s %s\n", RenderLabel("Role:"), info.Role)
	return nil
}

// HandleRegister starts parent account creation. The portal sends a
// verification email; the account password is set from the emailed link.
func HandleRegister(ctx context.Context, app *App, args Args) error {
	if err := RequiresTTY("register"); err != nil {
		return err
	}

	name, err := ReadLine("Name: ")
	if err != nil {
		return err
	}
	email, err := ReadLine("Email: ")
	if err != nil {
		return err
	}
	phone, err := ReadLine("Phone number (optional): ")
	if err != nil {
		return err
	}

	msg, err := app.Client.SendVerification(ctx, api.RegisterRequest{
		Name:        name,
		Email:       email,
		Role:        "parent",
		PhoneNumber: phone,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", SuccessStyle.Render("[OK]"), msg.Message)
	fmt.Println(DimStyle.Render("Check your email to verify the account and set a password."))
	return nil
}
