// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth stores the portal session token between runs.
package auth

import (
	"crypto/rand"
	"errors"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/morganforge/owlet-tui/internal/util"
)

// ErrNoToken is returned when no session token has been saved.
var ErrNoToken = errors.New("no session token stored")

// =============================================================================
// TOKEN STORE
// =============================================================================

// TokenStore persists the bearer token issued at login.
//
// The zero value is not usable; construct with NewTokenStore.
type TokenStore struct {
	mu      sync.Mutex
	path    string
	encrypt bool

	// cached token, loaded lazily
	token  string
	loaded bool
}

// NewTokenStore creates a store writing to path. When encrypt is true the
// token is sealed with ChaCha20-Poly1305; the key lives next to the token
// file with 0600 permissions.
func NewTokenStore(path string, encrypt bool) *TokenStore {
	return &TokenStore{path: path, encrypt: encrypt}
}

// Save persists a new session token, replacing any previous one.
func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := []byte(token)
	if s.encrypt {
		sealed, err := s.seal(data)
		if err != nil {
			return err
		}
		data = sealed
	}

	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return err
	}

	s.token = token
	s.loaded = true
	return nil
}

// Load reads the stored token. Returns ErrNoToken when none exists.
func (s *TokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Clear removes the stored token and its key material.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(s.keyPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Token implements api.CredentialProvider. A missing or unreadable token
// yields ok=false; requests then go out unauthenticated and the portal
// answers 401.
func (s *TokenStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.loadLocked()
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// loadLocked reads and caches the token. Caller holds s.mu.
func (s *TokenStore) loadLocked() (string, error) {
	if s.loaded {
		if s.token == "" {
			return "", ErrNoToken
		}
		return s.token, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return "", ErrNoToken
		}
		return "", err
	}

	if s.encrypt {
		plain, err := s.open(data)
		if err != nil {
			return "", err
		}
		data = plain
	}

	s.token = strings.TrimSpace(string(data))
	s.loaded = true
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

// =============================================================================
// ENCRYPTION
// =============================================================================

// keyPath is where the sealing key lives, next to the token file.
func (s *TokenStore) keyPath() string {
	return s.path + ".key"
}

// loadOrCreateKey returns the sealing key, generating one on first use.
func (s *TokenStore) loadOrCreateKey() ([]byte, error) {
	key, err := os.ReadFile(s.keyPath())
	if err == nil && len(key) == chacha20poly1305.KeySize {
		return key, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := util.AtomicWriteFile(s.keyPath(), key, 0600); err != nil {
		return nil, err
	}
	return key, nil
}

// seal encrypts plaintext as nonce||ciphertext.
func (s *TokenStore) seal(plain []byte) ([]byte, error) {
	key, err := s.loadOrCreateKey()
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plain, nil), nil
}

// open decrypts nonce||ciphertext produced by seal.
func (s *TokenStore) open(sealed []byte) ([]byte, error) {
	key, err := s.loadOrCreateKey()
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("token file corrupted")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}
