// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the client-side chat session for one kid.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/morganforge/owlet-tui/internal/api"
)

// =============================================================================
// REQUEST COORDINATOR
// =============================================================================

// Outcome is the result of one question submission: the authoritative
// history fetched after the answer landed, or the error that ended it.
type Outcome struct {
	ThreadID  int64
	RequestID string
	History   []api.HistoryEntry
	Err       error
}

// RequestCoordinator serializes question submissions per thread. At most
// one question may be in flight for a given thread; a second send is
// rejected locally without touching the network.
type RequestCoordinator struct {
	api ChatAPI

	mu      sync.Mutex
	pending map[int64]string // thread id -> request id
}

// NewRequestCoordinator creates an idle coordinator.
func NewRequestCoordinator(chatAPI ChatAPI) *RequestCoordinator {
	return &RequestCoordinator{
		api:     chatAPI,
		pending: make(map[int64]string),
	}
}

// IsPending reports whether a question is in flight for the thread.
func (c *RequestCoordinator) IsPending(threadID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[threadID]
	return ok
}

// Send submits a question on the thread and fetches the refreshed history.
// If a question is already pending for the thread it returns
// ErrAlreadyPending immediately. The pending mark is cleared on every exit
// path, success or failure, so a failed send never wedges the thread.
func (c *RequestCoordinator) Send(ctx context.Context, threadID int64, question string) Outcome {
	requestID := uuid.NewString()

	c.mu.Lock()
	if _, busy := c.pending[threadID]; busy {
		c.mu.Unlock()
		return Outcome{ThreadID: threadID, RequestID: requestID, Err: ErrAlreadyPending}
	}
	c.pending[threadID] = requestID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, threadID)
		c.mu.Unlock()
	}()

	if _, err := c.api.SubmitQuestion(ctx, threadID, question); err != nil {
		return Outcome{ThreadID: threadID, RequestID: requestID, Err: err}
	}

	// The submit response carries only the new entry; refetch the whole
	// history so reconciliation has the portal's authoritative ordering.
	history, err := c.api.GetHistory(ctx, threadID)
	if err != nil {
		return Outcome{ThreadID: threadID, RequestID: requestID, Err: err}
	}

	return Outcome{ThreadID: threadID, RequestID: requestID, History: history}
}
