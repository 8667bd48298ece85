// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the client-side chat session for one kid.
//
// Four collaborators make up the session:
//
//   - ThreadRegistry: the set of named chat threads for the kid, plus
//     which one is selected. Mutations go to the portal and the registry
//     refreshes by re-listing, so it can never drift from server state.
//   - ConversationStore: the ordered transcript of the selected thread.
//     Sends append an optimistic pending entry immediately; reconciliation
//     replaces the transcript wholesale with the authoritative history.
//   - RequestCoordinator: serializes question submissions. At most one
//     question may be in flight per thread; further sends are rejected
//     locally before any network call.
//   - Controller: the facade the UI talks to. It translates user intents
//     into the calls above and derives the view flags (sending, loading,
//     can-send).
//
// Late responses are handled by discarding, not cancelling: a history
// refresh that resolves after the user switched threads is dropped by a
// staleness check against the currently selected thread.
package session
