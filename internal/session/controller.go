// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the client-side chat session for one kid.
package session

import (
	"context"

	"github.com/morganforge/owlet-tui/internal/model"
	"github.com/morganforge/owlet-tui/internal/util"
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the facade the UI talks to. It composes the registry,
// store, and coordinator, translating user intents into their operations
// and deriving the flags the view needs.
type Controller struct {
	registry *ThreadRegistry
	store    *ConversationStore
	coord    *RequestCoordinator
}

// NewController wires a session for one kid.
func NewController(registry *ThreadRegistry, store *ConversationStore, coord *RequestCoordinator) *Controller {
	return &Controller{registry: registry, store: store, coord: coord}
}

// Refresh re-lists the kid's threads from the portal.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.registry.Refresh(ctx)
}

// KidID returns the kid this session belongs to.
func (c *Controller) KidID() int64 {
	return c.registry.KidID()
}

// Threads returns the current thread listing.
func (c *Controller) Threads() []model.Thread {
	return c.registry.Threads()
}

// ActiveThreadID returns the selected thread id, or zero.
func (c *Controller) ActiveThreadID() int64 {
	return c.registry.Selected()
}

// ActiveThread returns the selected thread, if any.
func (c *Controller) ActiveThread() (model.Thread, bool) {
	id := c.registry.Selected()
	if id == 0 {
		return model.Thread{}, false
	}
	return c.registry.Get(id)
}

// Transcript returns the transcript of the selected thread in order.
func (c *Controller) Transcript() []*model.Message {
	return c.store.Messages()
}

// =============================================================================
// THREAD OPERATIONS
// =============================================================================

// SelectThread makes a thread active and loads its history. Selecting the
// already-active thread reloads the history. The transcript clears
// immediately so the old thread's messages never bleed into the new one.
func (c *Controller) SelectThread(ctx context.Context, threadID int64) error {
	if err := c.registry.Select(threadID); err != nil {
		return err
	}
	c.store.SetActive(threadID)
	if threadID == 0 {
		return nil
	}
	return c.store.LoadHistory(ctx, threadID)
}

// CreateThread adds a named thread for the kid.
func (c *Controller) CreateThread(ctx context.Context, title string) error {
	return c.registry.Create(ctx, title)
}

// RenameThread retitles a thread.
func (c *Controller) RenameThread(ctx context.Context, threadID int64, title string) error {
	return c.registry.Rename(ctx, threadID, title)
}

// DeleteThread removes a thread. If it was active, the session deselects
// and the cached transcript snapshot is dropped.
func (c *Controller) DeleteThread(ctx context.Context, threadID int64) error {
	wasActive := c.registry.Selected() == threadID
	if err := c.registry.Delete(ctx, threadID); err != nil {
		return err
	}
	if wasActive {
		c.store.SetActive(0)
	}
	c.store.ForgetCached(threadID)
	return nil
}

// =============================================================================
// SENDING
// =============================================================================

// SendQuestion submits a question on the active thread.
//
// The question appears in the transcript immediately as a pending entry.
// The call blocks until the portal answers (run it from a tea.Cmd or a
// goroutine); on success the transcript is replaced with the refreshed
// history, on failure the pending entry is removed and the error returned
// for the UI to surface.
func (c *Controller) SendQuestion(ctx context.Context, text string) error {
	question := util.SanitizeInput(text)
	if question == "" {
		return ErrEmptyQuestion
	}

	threadID := c.registry.Selected()
	if threadID == 0 {
		return ErrNoActiveThread
	}
	if c.coord.IsPending(threadID) {
		return ErrAlreadyPending
	}

	optimisticID := c.store.AppendOptimistic(question)
	outcome := c.coord.Send(ctx, threadID, question)
	c.store.Reconcile(optimisticID, outcome)
	return outcome.Err
}

// =============================================================================
// VIEW FLAGS
// =============================================================================

// IsSending reports whether a question is in flight on the active thread.
func (c *Controller) IsSending() bool {
	id := c.registry.Selected()
	return id != 0 && c.coord.IsPending(id)
}

// IsLoadingHistory reports whether a history load is in flight.
func (c *Controller) IsLoadingHistory() bool {
	return c.store.IsLoadingHistory()
}

// IsShowingCached reports whether the transcript came from the local cache.
func (c *Controller) IsShowingCached() bool {
	return c.store.IsShowingCached()
}

// CanSend reports whether the send action should be enabled for the given
// input text.
func (c *Controller) CanSend(text string) bool {
	if util.SanitizeInput(text) == "" {
		return false
	}
	id := c.registry.Selected()
	return id != 0 && !c.coord.IsPending(id)
}
