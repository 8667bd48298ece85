// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageIDNamespaces(t *testing.T) {
	local := NewLocalID()
	remote := RemoteID("q-123")

	assert.True(t, local.IsLocal())
	assert.False(t, remote.IsLocal())
	assert.NotEqual(t, local, remote)

	// Local ids are unique per process.
	other := NewLocalID()
	assert.NotEqual(t, local, other)

	// A remote id can never equal a local id, whatever the server assigns.
	assert.NotEqual(t, RemoteID("1"), MessageID{Local: 1})
}

func TestNewPendingMessage(t *testing.T) {
	msg := NewPendingMessage(7, "What is 7x8?")

	assert.True(t, msg.ID.IsLocal())
	assert.Equal(t, int64(7), msg.ThreadID)
	assert.Equal(t, "What is 7x8?", msg.Question)
	assert.Empty(t, msg.Answer)
	assert.Equal(t, StatePending, msg.State)
	assert.True(t, msg.IsPending())
}

func TestNewAnsweredMessage(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	msg := NewAnsweredMessage(7, "q-1", "What is 7x8?", "56", "math", created)

	assert.Equal(t, RemoteID("q-1"), msg.ID)
	assert.Equal(t, StateAnswered, msg.State)
	assert.Equal(t, "56", msg.Answer)
	assert.Equal(t, "math", msg.Subject)
	assert.Equal(t, created, msg.CreatedAt)
	assert.False(t, msg.IsPending())
}

func TestMessagePreview(t *testing.T) {
	msg := NewPendingMessage(1, "a long question about fractions and decimals")
	assert.Equal(t, "a long q...", msg.Preview(11))

	short := NewPendingMessage(1, "hi")
	assert.Equal(t, "hi", short.Preview(11))
}

func TestConversationSetActiveClearsTranscript(t *testing.T) {
	conv := NewConversation()
	conv.SetActive(1)
	conv.Append(NewPendingMessage(1, "q"))
	require.Equal(t, 1, conv.MessageCount())

	conv.SetActive(2)
	assert.Equal(t, int64(2), conv.ActiveThreadID)
	assert.True(t, conv.IsEmpty())

	conv.SetActive(0)
	assert.False(t, conv.HasActive())
}

func TestConversationRemoveByID(t *testing.T) {
	conv := NewConversation()
	conv.SetActive(1)
	first := NewPendingMessage(1, "first")
	second := NewPendingMessage(1, "second")
	conv.Append(first)
	conv.Append(second)

	assert.True(t, conv.RemoveByID(first.ID))
	assert.False(t, conv.RemoveByID(first.ID))
	require.Equal(t, 1, conv.MessageCount())
	assert.Equal(t, second.ID, conv.Messages[0].ID)
}

func TestConversationReplaceAll(t *testing.T) {
	conv := NewConversation()
	conv.SetActive(1)
	conv.Append(NewPendingMessage(1, "optimistic"))

	server := []*Message{
		NewAnsweredMessage(1, "q-1", "optimistic", "answer", "", time.Now()),
	}
	conv.ReplaceAll(server)

	require.Equal(t, 1, conv.MessageCount())
	assert.Equal(t, RemoteID("q-1"), conv.Messages[0].ID)
	assert.False(t, conv.HasPending())
}

func TestConversationHasPendingAndLast(t *testing.T) {
	conv := NewConversation()
	conv.SetActive(1)
	assert.Nil(t, conv.Last())
	assert.False(t, conv.HasPending())

	answered := NewAnsweredMessage(1, "q-1", "q", "a", "", time.Now())
	pending := NewPendingMessage(1, "next")
	conv.Append(answered)
	conv.Append(pending)

	assert.True(t, conv.HasPending())
	assert.Equal(t, pending.ID, conv.Last().ID)
}

func TestConversationIDSet(t *testing.T) {
	conv := NewConversation()
	conv.SetActive(1)
	msg := NewPendingMessage(1, "q")
	conv.Append(msg)

	set := conv.IDSet()
	_, ok := set[msg.ID]
	assert.True(t, ok)
	assert.Len(t, set, 1)
}
