// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadPlaintext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewTokenStore(path, false)

	require.NoError(t, store.Save("abc123"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// A fresh store re-reads from disk.
	fresh := NewTokenStore(path, false)
	token, err = fresh.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestSaveAndLoadEncrypted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewTokenStore(path, true)

	require.NoError(t, store.Save("secret-token"))

	// Token is not stored in the clear.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-token")

	fresh := NewTokenStore(path, true)
	token, err := fresh.Load()
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)
}

func TestLoadMissingToken(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token"), false)

	_, err := store.Load()
	assert.True(t, errors.Is(err, ErrNoToken))

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestClearRemovesTokenAndKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewTokenStore(path, true)
	require.NoError(t, store.Save("tok"))

	require.NoError(t, store.Clear())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path + ".key")
	assert.True(t, os.IsNotExist(err))

	_, ok := store.Token()
	assert.False(t, ok)

	// Clearing again is not an error.
	require.NoError(t, store.Clear())
}

func TestTokenImplementsCredentialProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewTokenStore(path, false)
	require.NoError(t, store.Save("tok"))

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)
}
