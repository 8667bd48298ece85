// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatorSendFetchesHistory(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")
	coord := NewRequestCoordinator(f)

	outcome := coord.Send(context.Background(), id, "What is 2+2?")
	require.NoError(t, outcome.Err)
	assert.Equal(t, id, outcome.ThreadID)
	assert.NotEmpty(t, outcome.RequestID)
	require.Len(t, outcome.History, 1)
	assert.Equal(t, "What is 2+2?", outcome.History[0].Question)
	assert.False(t, coord.IsPending(id))
}

func TestCoordinatorRejectsSecondSendWithoutNetworkCall(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")
	coord := NewRequestCoordinator(f)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	f.submitHook = func() {
		close(inFlight)
		<-release
	}

	firstDone := make(chan Outcome, 1)
	go func() { firstDone <- coord.Send(context.Background(), id, "first") }()
	<-inFlight

	assert.True(t, coord.IsPending(id))

	// The second send is rejected at the gate; submit count stays at 1.
	f.mu.Lock()
	f.submitHook = nil
	f.mu.Unlock()
	outcome := coord.Send(context.Background(), id, "second")
	assert.ErrorIs(t, outcome.Err, ErrAlreadyPending)

	f.mu.Lock()
	assert.Equal(t, 1, f.submitCalls)
	f.mu.Unlock()

	close(release)
	first := <-firstDone
	require.NoError(t, first.Err)
	assert.False(t, coord.IsPending(id))
}

func TestCoordinatorDifferentThreadsSendIndependently(t *testing.T) {
	f := newFakeAPI()
	a := f.addThread("Thread A")
	b := f.addThread("Thread B")
	coord := NewRequestCoordinator(f)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	f.submitHook = func() {
		close(inFlight)
		<-release
	}

	aDone := make(chan Outcome, 1)
	go func() { aDone <- coord.Send(context.Background(), a, "on a") }()
	<-inFlight

	f.mu.Lock()
	f.submitHook = nil
	f.mu.Unlock()

	outcome := coord.Send(context.Background(), b, "on b")
	require.NoError(t, outcome.Err)

	close(release)
	require.NoError(t, (<-aDone).Err)
}

func TestCoordinatorClearsPendingOnFailure(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")
	f.submitErr = assert.AnError
	coord := NewRequestCoordinator(f)

	outcome := coord.Send(context.Background(), id, "doomed")
	assert.ErrorIs(t, outcome.Err, assert.AnError)
	assert.False(t, coord.IsPending(id))

	// The thread is usable again.
	f.mu.Lock()
	f.submitErr = nil
	f.mu.Unlock()
	outcome = coord.Send(context.Background(), id, "retry")
	require.NoError(t, outcome.Err)
}

func TestCoordinatorClearsPendingOnHistoryFailure(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")
	f.historyErr = assert.AnError
	coord := NewRequestCoordinator(f)

	outcome := coord.Send(context.Background(), id, "question")
	assert.ErrorIs(t, outcome.Err, assert.AnError)

	assert.Eventually(t, func() bool { return !coord.IsPending(id) },
		time.Second, 10*time.Millisecond)
}
