// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the client-side chat session for one kid.
package session

import "errors"

// Local guard errors. These never leave the process: the UI reacts by
// disabling actions or ignoring them, not by showing error text.
var (
	// ErrAlreadyPending rejects a send while one is in flight for the
	// same thread. Not user-visible; it gates the send action.
	ErrAlreadyPending = errors.New("a question is already pending for this thread")

	// ErrEmptyQuestion rejects a blank or whitespace-only question.
	ErrEmptyQuestion = errors.New("question must not be empty")

	// ErrEmptyTitle rejects a blank thread title on create or rename.
	ErrEmptyTitle = errors.New("thread title must not be empty")

	// ErrNoActiveThread rejects a send when no thread is selected.
	ErrNoActiveThread = errors.New("no thread selected")

	// ErrUnknownThread rejects selecting a thread id that is not in the
	// registry's current listing.
	ErrUnknownThread = errors.New("unknown thread")
)
