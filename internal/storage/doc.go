// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage caches the last successfully fetched transcript per
// thread in a local SQLite database.
//
// The portal remains the single source of truth: the cache is written after
// every successful history fetch and read only as a fallback when a fetch
// fails, so an offline parent still sees the last known-good conversation
// (clearly marked as cached) instead of a blank screen.
package storage
