// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and top-level dispatch for owlet.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdWhoami
	CmdRegister
	CmdKids
	CmdThreads
	CmdAsk
	CmdChat
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	KidID   int64 // --kid overrides the configured default kid

	// Command-specific
	Query      string
	Subcommand string
	ThreadID   int64 // ask --thread
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after global flag parsing
	Raw []string
}

const usageText = `owlet - tutoring portal client for parents and kids

Owlet talks to the family tutoring portal: parents manage accounts and
kid profiles, kids chat with the tutor in named threads.

Usage:
  owlet                        Start the chat TUI (default)
  owlet login                  Sign in and store the session token
  owlet logout                 Forget the stored session token
  owlet whoami                 Show the signed-in account
  owlet register               Create a parent account
  owlet kids [subcommand]      Manage kid profiles
  owlet threads [subcommand]   Manage chat threads
  owlet ask "question"         Ask one question and print the answer
  owlet chat                   Line-based chat (no TUI)
  owlet config [show|set|path] Configuration
  owlet version                Show version
  owlet help                   Show this help

Kid Commands:
  owlet kids list              List kid profiles
  owlet kids add NAME          Add a kid profile
    --age N                    Age in years
    --standard N               School standard/grade
  owlet kids show ID           Show one kid profile
  owlet kids update ID         Update a kid profile
    --name NAME                New display name
    --age N                    New age
    --standard N               New standard/grade
  owlet kids remove ID         Remove a kid profile
    --yes                      Skip the confirmation prompt

Thread Commands (all take --kid ID unless a default kid is configured):
  owlet threads list           List chat threads
  owlet threads create TITLE   Create a named thread
  owlet threads rename ID TITLE  Rename a thread
  owlet threads delete ID      Delete a thread and its history
    --yes                      Skip the confirmation prompt

Ask Command:
  owlet ask "question"         Ask on a fresh thread
    --thread ID                Ask on an existing thread
    --kid ID                   Ask as a specific kid

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --json          Machine-readable output for list commands
  --kid ID        Select the kid profile for this invocation

Examples:
  owlet login
  owlet kids add "Sam" --age 9 --standard 4
  owlet threads create "Fractions" --kid 3
  owlet ask "What is a numerator?" --kid 3
  owlet chat --kid 3
  owlet config set server.base_url https://portal.example.com

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("owlet version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments. Split out of Parse for testing.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "login":
		return CmdLogin, parsedArgs

	case "logout":
		return CmdLogout, parsedArgs

	case "whoami", "who":
		return CmdWhoami, parsedArgs

	case "register", "signup":
		return CmdRegister, parsedArgs

	case "kids", "kid":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdKids, parsedArgs

	case "threads", "thread":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdThreads, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "chat":
		parseAskArgs(&parsedArgs, remaining)
		return CmdChat, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: treat the whole line as a question for ask.
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		parseAskArgs(&parsedArgs, parsedArgs.Raw)
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--kid":
			if i+1 < len(args) {
				i++
				if id, err := strconv.ParseInt(args[i], 10, 64); err == nil {
					parsedArgs.KidID = id
				}
			}
		default:
			if strings.HasPrefix(arg, "--kid=") {
				if id, err := strconv.ParseInt(strings.TrimPrefix(arg, "--kid="), 10, 64); err == nil {
					parsedArgs.KidID = id
				}
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments: everything that is
// not a flag joins into the question.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch {
		case arg == "--thread" || arg == "-t":
			if i+1 < len(remaining) {
				i++
				if id, err := strconv.ParseInt(remaining[i], 10, 64); err == nil {
					args.ThreadID = id
				}
			}
		case strings.HasPrefix(arg, "--thread="):
			if id, err := strconv.ParseInt(strings.TrimPrefix(arg, "--thread="), 10, 64); err == nil {
				args.ThreadID = id
			}
		case strings.HasPrefix(arg, "-"):
			// Unknown flag, ignore.
		default:
			query = append(query, arg)
		}
	}

	args.Query = strings.Join(query, " ")
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = strings.Join(remaining[2:], " ")
		}
	}
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		resp := NewJSONResponse("version", map[string]string{
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
			"go_version": runtime.Version(),
		})
		resp.Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
