// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth stores the portal session token between runs.
//
// The token is written to a file under the owlet config directory, by
// default encrypted at rest with ChaCha20-Poly1305 under a randomly
// generated key kept beside it with 0600 permissions. The store implements
// the api.CredentialProvider interface, so the HTTP client receives
// credentials by injection rather than reading ambient global state.
package auth
