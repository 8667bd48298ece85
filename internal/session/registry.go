// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the client-side chat session for one kid.
package session

import (
	"context"
	"sync"

	"github.com/morganforge/owlet-tui/internal/api"
	"github.com/morganforge/owlet-tui/internal/model"
	"github.com/morganforge/owlet-tui/internal/util"
)

// =============================================================================
// CHAT API
// =============================================================================

// ChatAPI is the slice of the portal client the session needs. *api.Client
// satisfies it; tests substitute fakes.
type ChatAPI interface {
	ListThreads(ctx context.Context, kidID int64) ([]api.Thread, error)
	CreateThread(ctx context.Context, kidID int64, title string) error
	RenameThread(ctx context.Context, kidID, threadID int64, title string) error
	DeleteThread(ctx context.Context, kidID, threadID int64) error
	SubmitQuestion(ctx context.Context, threadID int64, question string) (api.HistoryEntry, error)
	GetHistory(ctx context.Context, threadID int64) ([]api.HistoryEntry, error)
}

// =============================================================================
// THREAD REGISTRY
// =============================================================================

// ThreadRegistry tracks the named chat threads of one kid and which thread
// is selected. All mutations go through the portal and refresh the listing
// wholesale; only selection is a pure local transition.
type ThreadRegistry struct {
	api   ChatAPI
	kidID int64

	mu       sync.Mutex
	threads  []model.Thread
	selected int64 // 0 = none
}

// NewThreadRegistry creates a registry for one kid. Call Refresh before
// reading the thread list.
func NewThreadRegistry(chatAPI ChatAPI, kidID int64) *ThreadRegistry {
	return &ThreadRegistry{api: chatAPI, kidID: kidID}
}

// KidID returns the owning kid's id.
func (r *ThreadRegistry) KidID() int64 {
	return r.kidID
}

// Refresh re-lists the threads from the portal, replacing the local set.
// On failure the previous listing is kept and the error is returned.
func (r *ThreadRegistry) Refresh(ctx context.Context) error {
	listed, err := r.api.ListThreads(ctx, r.kidID)
	if err != nil {
		return err
	}

	threads := make([]model.Thread, 0, len(listed))
	for _, t := range listed {
		threads = append(threads, model.Thread{ID: t.ID, KidID: r.kidID, Title: t.Title})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.threads = threads

	// The selected thread may have disappeared server-side.
	if r.selected != 0 && !containsThread(threads, r.selected) {
		r.selected = 0
	}
	return nil
}

// Threads returns a copy of the current listing.
func (r *ThreadRegistry) Threads() []model.Thread {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Thread, len(r.threads))
	copy(out, r.threads)
	return out
}

// Get returns the thread with the given id from the current listing.
func (r *ThreadRegistry) Get(threadID int64) (model.Thread, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.threads {
		if t.ID == threadID {
			return t, true
		}
	}
	return model.Thread{}, false
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Create adds a named thread. The portal assigns the id; the listing is
// refreshed rather than patched so the registry never drifts.
func (r *ThreadRegistry) Create(ctx context.Context, title string) error {
	title = util.SanitizeInput(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if err := r.api.CreateThread(ctx, r.kidID, title); err != nil {
		return err
	}
	return r.Refresh(ctx)
}

// Rename changes a thread's title, keeping its id.
func (r *ThreadRegistry) Rename(ctx context.Context, threadID int64, title string) error {
	title = util.SanitizeInput(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if err := r.api.RenameThread(ctx, r.kidID, threadID, title); err != nil {
		return err
	}
	return r.Refresh(ctx)
}

// Delete removes a thread. Confirmation is the caller's concern; by the
// time Delete runs the user has already said yes. If the deleted thread
// was selected, the selection is cleared.
func (r *ThreadRegistry) Delete(ctx context.Context, threadID int64) error {
	if err := r.api.DeleteThread(ctx, r.kidID, threadID); err != nil {
		return err
	}

	r.mu.Lock()
	if r.selected == threadID {
		r.selected = 0
	}
	r.mu.Unlock()

	return r.Refresh(ctx)
}

// =============================================================================
// SELECTION
// =============================================================================

// Select marks a thread as active. Pure local state transition, no network
// call; the caller triggers the history reload.
func (r *ThreadRegistry) Select(threadID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if threadID == 0 {
		r.selected = 0
		return nil
	}
	if !containsThread(r.threads, threadID) {
		return ErrUnknownThread
	}
	r.selected = threadID
	return nil
}

// Selected returns the active thread id, or zero.
func (r *ThreadRegistry) Selected() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

func containsThread(threads []model.Thread, id int64) bool {
	for _, t := range threads {
		if t.ID == id {
			return true
		}
	}
	return false
}
