// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/owlet-tui/internal/api"
)

func TestArgParserFlagsAndPositionals(t *testing.T) {
	p := NewArgParser([]string{"rename", "12", "--title=Algebra basics", "--yes"})

	assert.Equal(t, "rename", p.Subcommand())
	assert.Equal(t, "12", p.Positional(1))
	assert.Equal(t, "Algebra basics", p.Flag("title"))
	assert.True(t, p.BoolFlag("yes"))
	assert.False(t, p.BoolFlag("json"))
}

func TestArgParserSpaceSeparatedFlag(t *testing.T) {
	p := NewArgParser([]string{"add", "Sam", "--age", "9", "--school", "Hillside"})

	assert.Equal(t, "add", p.Subcommand())
	assert.Equal(t, "Sam", p.Positional(1))
	assert.Equal(t, "9", p.Flag("age"))
	assert.Equal(t, "Hillside", p.Flag("school"))
}

func TestArgParserExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--json=false", "--yes=true"})
	assert.False(t, p.BoolFlag("json"))
	assert.True(t, p.BoolFlag("yes"))
}

func TestArgParserPositionalInt64(t *testing.T) {
	p := NewArgParser([]string{"delete", "42"})

	id, err := p.PositionalInt64(1, "thread id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = p.PositionalInt64(2, "thread id")
	assert.Error(t, err)

	p = NewArgParser([]string{"delete", "zero"})
	_, err = p.PositionalInt64(1, "thread id")
	assert.Error(t, err)
}

func TestParseArgsCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{"no args is TUI", nil, CmdTUI},
		{"login", []string{"login"}, CmdLogin},
		{"logout", []string{"logout"}, CmdLogout},
		{"whoami", []string{"whoami"}, CmdWhoami},
		{"kids", []string{"kids", "list"}, CmdKids},
		{"threads", []string{"threads"}, CmdThreads},
		{"ask", []string{"ask", "what", "is", "pi"}, CmdAsk},
		{"chat", []string{"chat"}, CmdChat},
		{"config", []string{"config", "show"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := ParseArgs(tt.args)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParseArgsGlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--kid", "3", "--json", "threads", "list"})
	assert.Equal(t, CmdThreads, cmd)
	assert.Equal(t, int64(3), args.KidID)
	assert.True(t, args.JSON)
	assert.Equal(t, "list", args.Subcommand)
}

func TestParseArgsAskQueryAndThread(t *testing.T) {
	cmd, args := ParseArgs([]string{"ask", "what", "is", "a", "numerator", "--thread", "12"})
	assert.Equal(t, CmdAsk, cmd)
	assert.Equal(t, "what is a numerator", args.Query)
	assert.Equal(t, int64(12), args.ThreadID)
}

func TestParseArgsUnknownCommandBecomesAsk(t *testing.T) {
	cmd, args := ParseArgs([]string{"why", "is", "the", "sky", "blue"})
	assert.Equal(t, CmdAsk, cmd)
	assert.Equal(t, "why is the sky blue", args.Query)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitUsageError, GetExitCode(ErrMissingArgument("title", "usage")))
	assert.Equal(t, ExitNotFoundError, GetExitCode(&NotFoundError{Resource: "thread", ID: "9"}))
	assert.Equal(t, ExitAuthError, GetExitCode(api.ErrUnauthorized))
	assert.Equal(t, ExitNetworkError,
		GetExitCode(&api.Error{Kind: api.KindNetwork, Message: "cannot reach the portal"}))
	assert.Equal(t, ExitGeneralError, GetExitCode(assert.AnError))
}
