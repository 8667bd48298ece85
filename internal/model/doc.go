// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat threads, messages,
// and the per-thread conversation session.
//
// A Thread is a named conversation channel belonging to one kid. A Message
// is a question/answer pair inside a thread; it is either durable (created
// by the portal, carrying a server-assigned id) or optimistic (created
// locally while a send is in flight, carrying a local sequence id that can
// never collide with a server id). The Conversation holds the ordered
// transcript for the currently selected thread.
package model
