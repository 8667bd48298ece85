// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/owlet-tui/internal/model"
)

func TestControllerSelectThreadLoadsHistory(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")
	f.setHistory(id,
		newEntry("a", "What is 2+2?", "4"),
		newEntry("b", "What is 3+3?", "6"),
	)

	c := newSession(f)
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.SelectThread(context.Background(), id))

	assert.Equal(t, id, c.ActiveThreadID())
	transcript := c.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, "What is 2+2?", transcript[0].Question)
	assert.Equal(t, "4", transcript[0].Answer)
}

func TestControllerSendSuccess(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")

	c := newSession(f)
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.SelectThread(context.Background(), id))

	require.NoError(t, c.SendQuestion(context.Background(), "What is 2+2?"))

	transcript := c.Transcript()
	require.Len(t, transcript, 1)
	// The optimistic entry has been retired for the server-issued one.
	assert.False(t, transcript[0].ID.IsLocal())
	assert.Equal(t, model.StateAnswered, transcript[0].State)
	assert.Equal(t, "What is 2+2?", transcript[0].Question)
	assert.False(t, c.IsSending())
}

func TestControllerSendFailureRollsBack(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")
	f.setHistory(id, newEntry("a", "earlier", "answered"))

	c := newSession(f)
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.SelectThread(context.Background(), id))
	before := idSet(c.Transcript())

	f.mu.Lock()
	f.submitErr = assert.AnError
	f.mu.Unlock()

	err := c.SendQuestion(context.Background(), "doomed")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, before, idSet(c.Transcript()))
	assert.False(t, c.IsSending())
}

func TestControllerSendGuards(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")

	c := newSession(f)
	require.NoError(t, c.Refresh(context.Background()))

	// No thread selected.
	assert.ErrorIs(t, c.SendQuestion(context.Background(), "hello"), ErrNoActiveThread)

	require.NoError(t, c.SelectThread(context.Background(), id))

	// Blank input never reaches the network.
	assert.ErrorIs(t, c.SendQuestion(context.Background(), "  \n "), ErrEmptyQuestion)
	f.mu.Lock()
	assert.Zero(t, f.submitCalls)
	f.mu.Unlock()
}

func TestControllerRapidSecondSendRejected(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")

	c := newSession(f)
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.SelectThread(context.Background(), id))

	inFlight := make(chan struct{})
	release := make(chan struct{})
	f.submitHook = func() {
		close(inFlight)
		<-release
	}

	firstDone := make(chan error, 1)
	go func() { firstDone <- c.SendQuestion(context.Background(), "first") }()
	<-inFlight

	assert.True(t, c.IsSending())
	assert.False(t, c.CanSend("second"))

	f.mu.Lock()
	f.submitHook = nil
	f.mu.Unlock()

	// Second press while the first is in flight: rejected locally.
	err := c.SendQuestion(context.Background(), "second")
	assert.ErrorIs(t, err, ErrAlreadyPending)
	f.mu.Lock()
	assert.Equal(t, 1, f.submitCalls)
	f.mu.Unlock()

	close(release)
	require.NoError(t, <-firstDone)

	// Only the first question is in the transcript.
	transcript := c.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, "first", transcript[0].Question)
}

func TestControllerSwitchDuringSendDiscardsStaleHistory(t *testing.T) {
	f := newFakeAPI()
	a := f.addThread("Thread A")
	b := f.addThread("Thread B")
	f.setHistory(b, newEntry("b1", "on b", "answered"))

	c := newSession(f)
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.SelectThread(context.Background(), a))

	inFlight := make(chan struct{})
	release := make(chan struct{})
	f.submitHook = func() {
		close(inFlight)
		<-release
	}

	sendDone := make(chan error, 1)
	go func() { sendDone <- c.SendQuestion(context.Background(), "on a") }()
	<-inFlight

	// Switch threads while A's send is still in flight.
	f.mu.Lock()
	f.submitHook = nil
	f.mu.Unlock()
	require.NoError(t, c.SelectThread(context.Background(), b))

	close(release)
	require.NoError(t, <-sendDone)

	// B's transcript shows only B's history; A's late result was dropped.
	assert.Equal(t, b, c.ActiveThreadID())
	transcript := c.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, "on b", transcript[0].Question)

	// A's answer landed server-side and shows up when A is revisited.
	require.NoError(t, c.SelectThread(context.Background(), a))
	transcript = c.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, "on a", transcript[0].Question)
}

func TestControllerDeleteActiveThreadDeselects(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Doomed")

	c := newSession(f)
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.SelectThread(context.Background(), id))

	require.NoError(t, c.DeleteThread(context.Background(), id))
	assert.Zero(t, c.ActiveThreadID())
	assert.Empty(t, c.Transcript())
	assert.Empty(t, c.Threads())
}

func TestControllerCanSend(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")

	c := newSession(f)
	require.NoError(t, c.Refresh(context.Background()))

	assert.False(t, c.CanSend("hello"), "no thread selected")

	require.NoError(t, c.SelectThread(context.Background(), id))
	assert.True(t, c.CanSend("hello"))
	assert.False(t, c.CanSend("   "), "blank input")
}
