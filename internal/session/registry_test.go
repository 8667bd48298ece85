// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRefreshReplacesListing(t *testing.T) {
	f := newFakeAPI()
	f.addThread("Math homework")
	f.addThread("Science fair")

	reg := NewThreadRegistry(f, 1)
	require.NoError(t, reg.Refresh(context.Background()))

	threads := reg.Threads()
	require.Len(t, threads, 2)
	assert.Equal(t, "Math homework", threads[0].Title)
	assert.Equal(t, int64(1), threads[0].KidID)
}

func TestRegistryRefreshFailureKeepsListing(t *testing.T) {
	f := newFakeAPI()
	f.addThread("Math homework")

	reg := NewThreadRegistry(f, 1)
	require.NoError(t, reg.Refresh(context.Background()))

	f.listErr = assert.AnError
	require.Error(t, reg.Refresh(context.Background()))
	assert.Len(t, reg.Threads(), 1)
}

func TestRegistryCreateRefreshes(t *testing.T) {
	f := newFakeAPI()
	reg := NewThreadRegistry(f, 1)

	require.NoError(t, reg.Create(context.Background(), "New thread"))

	threads := reg.Threads()
	require.Len(t, threads, 1)
	assert.Equal(t, "New thread", threads[0].Title)
	// The portal assigned the id, not the client.
	assert.NotZero(t, threads[0].ID)
}

func TestRegistryCreateRejectsBlankTitle(t *testing.T) {
	f := newFakeAPI()
	reg := NewThreadRegistry(f, 1)

	assert.ErrorIs(t, reg.Create(context.Background(), "   "), ErrEmptyTitle)
	assert.Empty(t, reg.Threads())
}

func TestRegistryRenameKeepsID(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Old title")

	reg := NewThreadRegistry(f, 1)
	require.NoError(t, reg.Refresh(context.Background()))
	require.NoError(t, reg.Rename(context.Background(), id, "New title"))

	got, ok := reg.Get(id)
	require.True(t, ok)
	assert.Equal(t, "New title", got.Title)
}

func TestRegistryRenameRejectsBlankTitle(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Old title")

	reg := NewThreadRegistry(f, 1)
	require.NoError(t, reg.Refresh(context.Background()))
	assert.ErrorIs(t, reg.Rename(context.Background(), id, ""), ErrEmptyTitle)
}

func TestRegistrySelectValidatesMembership(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")

	reg := NewThreadRegistry(f, 1)
	require.NoError(t, reg.Refresh(context.Background()))

	require.NoError(t, reg.Select(id))
	assert.Equal(t, id, reg.Selected())

	assert.ErrorIs(t, reg.Select(999), ErrUnknownThread)
	// Failed select leaves the previous selection intact.
	assert.Equal(t, id, reg.Selected())
}

func TestRegistrySelectIsLocal(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Math homework")

	reg := NewThreadRegistry(f, 1)
	require.NoError(t, reg.Refresh(context.Background()))

	before := f.listCalls
	require.NoError(t, reg.Select(id))
	assert.Equal(t, before, f.listCalls)
}

func TestRegistryDeleteClearsSelection(t *testing.T) {
	f := newFakeAPI()
	id := f.addThread("Doomed")
	keep := f.addThread("Kept")

	reg := NewThreadRegistry(f, 1)
	require.NoError(t, reg.Refresh(context.Background()))
	require.NoError(t, reg.Select(id))

	require.NoError(t, reg.Delete(context.Background(), id))
	assert.Zero(t, reg.Selected())

	threads := reg.Threads()
	require.Len(t, threads, 1)
	assert.Equal(t, keep, threads[0].ID)
}

func TestRegistryDeleteOtherKeepsSelection(t *testing.T) {
	f := newFakeAPI()
	selected := f.addThread("Kept")
	doomed := f.addThread("Doomed")

	reg := NewThreadRegistry(f, 1)
	require.NoError(t, reg.Refresh(context.Background()))
	require.NoError(t, reg.Select(selected))

	require.NoError(t, reg.Delete(context.Background(), doomed))
	assert.Equal(t, selected, reg.Selected())
}
