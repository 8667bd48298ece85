// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Unified confirmation handling for destructive commands.
//
// One pattern everywhere:
//  1. --yes flag present: proceed without prompting
//  2. --json mode: require --yes (no interactive prompts in JSON mode)
//  3. stdin not a TTY: require --yes (cannot prompt)
//  4. otherwise: interactive [y/N] prompt
package cli

import (
	"fmt"
	"strings"
)

// RequireConfirmation checks whether the user has confirmed a destructive
// action, prompting interactively when possible.
//
//	confirmed, err := RequireConfirmation(yesFlag, "delete thread \"Fractions\"", jsonMode)
//	if err != nil {
//	    return err
//	}
//	if !confirmed {
//	    ShowCancellationMessage()
//	    return nil
//	}
func RequireConfirmation(yesFlag bool, action string, jsonMode bool) (bool, error) {
	if yesFlag {
		return true, nil
	}

	if jsonMode {
		return false, fmt.Errorf("confirmation required: use --yes for destructive actions in JSON mode")
	}

	if !IsTTY() {
		return false, fmt.Errorf("confirmation required but stdin is not a terminal; use --yes")
	}

	input, err := ReadLine(fmt.Sprintf("Are you sure you want to %s? [y/N]: ", action))
	if err != nil {
		return false, err
	}

	response := strings.ToLower(input)
	return response == "y" || response == "yes", nil
}

// ShowCancellationMessage displays a standard cancellation message.
func ShowCancellationMessage() {
	fmt.Println(DimStyle.Render("Cancelled."))
}
