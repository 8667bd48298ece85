// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *TranscriptCache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	cache := openTestCache(t)

	msgs := []CachedMessage{
		{ID: "q-1", Question: "What is 7x8?", Answer: "56", Subject: "math", CreatedAt: "2025-03-01T10:00:00Z"},
		{ID: "q-2", Question: "Why is the sky blue?", Answer: "Scattering.", Subject: "science", CreatedAt: "2025-03-01T10:05:00Z"},
	}
	require.NoError(t, cache.Save(7, msgs))

	snap, err := cache.Load(7)
	require.NoError(t, err)
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "q-1", snap.Messages[0].ID)
	assert.Equal(t, "q-2", snap.Messages[1].ID)
	assert.False(t, snap.CachedAt.IsZero())
}

func TestSaveReplacesWholesale(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Save(7, []CachedMessage{
		{ID: "q-1", Question: "old", Answer: "old", CreatedAt: "2025-03-01T10:00:00Z"},
		{ID: "q-2", Question: "old2", Answer: "old2", CreatedAt: "2025-03-01T10:01:00Z"},
	}))
	require.NoError(t, cache.Save(7, []CachedMessage{
		{ID: "q-9", Question: "new", Answer: "new", CreatedAt: "2025-03-01T11:00:00Z"},
	}))

	snap, err := cache.Load(7)
	require.NoError(t, err)
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, "q-9", snap.Messages[0].ID)
}

func TestLoadMissingThread(t *testing.T) {
	cache := openTestCache(t)

	_, err := cache.Load(404)
	assert.True(t, errors.Is(err, ErrNotCached))
}

func TestThreadsAreIsolated(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Save(1, []CachedMessage{{ID: "a", Question: "qa", Answer: "aa", CreatedAt: "t"}}))
	require.NoError(t, cache.Save(2, []CachedMessage{{ID: "b", Question: "qb", Answer: "ab", CreatedAt: "t"}}))

	snap, err := cache.Load(1)
	require.NoError(t, err)
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, "a", snap.Messages[0].ID)
}

func TestDelete(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Save(7, []CachedMessage{{ID: "a", Question: "q", Answer: "a", CreatedAt: "t"}}))
	require.NoError(t, cache.Delete(7))

	_, err := cache.Load(7)
	assert.True(t, errors.Is(err, ErrNotCached))

	// Deleting an absent thread is a no-op.
	require.NoError(t, cache.Delete(7))
}

func TestEmptySnapshotIsCached(t *testing.T) {
	cache := openTestCache(t)

	// A thread with no messages yet still records a snapshot.
	require.NoError(t, cache.Save(3, nil))

	snap, err := cache.Load(3)
	require.NoError(t, err)
	assert.Empty(t, snap.Messages)
}
