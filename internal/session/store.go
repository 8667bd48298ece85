// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the client-side chat session for one kid.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/morganforge/owlet-tui/internal/api"
	"github.com/morganforge/owlet-tui/internal/model"
	"github.com/morganforge/owlet-tui/internal/storage"
)

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationStore holds the transcript of the selected thread. Sends
// append an optimistic pending entry immediately; when the portal answers,
// the transcript is replaced wholesale with the fetched history. Results
// that arrive after the user switched threads are discarded.
//
// When a history load fails and the transcript cache has a snapshot for the
// thread, the snapshot is shown instead of an empty pane. The portal stays
// the source of truth; cached entries are replaced on the next successful
// load.
type ConversationStore struct {
	api   ChatAPI
	cache *storage.TranscriptCache // nil when caching is disabled

	mu        sync.Mutex
	conv      *model.Conversation
	loading   bool
	fromCache bool
}

// NewConversationStore creates an empty store. cache may be nil.
func NewConversationStore(chatAPI ChatAPI, cache *storage.TranscriptCache) *ConversationStore {
	return &ConversationStore{
		api:   chatAPI,
		cache: cache,
		conv:  model.NewConversation(),
	}
}

// SetActive switches the store to a thread, clearing the transcript.
// Passing zero deselects.
func (s *ConversationStore) SetActive(threadID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.SetActive(threadID)
	s.fromCache = false
}

// ActiveThreadID returns the thread the transcript belongs to, or zero.
func (s *ConversationStore) ActiveThreadID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.ActiveThreadID
}

// Messages returns a copy of the transcript in order.
func (s *ConversationStore) Messages() []*model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Message, len(s.conv.Messages))
	copy(out, s.conv.Messages)
	return out
}

// IsLoadingHistory reports whether a history load is in flight.
func (s *ConversationStore) IsLoadingHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsShowingCached reports whether the transcript came from the local cache
// rather than the portal.
func (s *ConversationStore) IsShowingCached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fromCache
}

// =============================================================================
// HISTORY LOADING
// =============================================================================

// LoadHistory fetches the thread's history from the portal and replaces
// the transcript. If the active thread changed while the fetch was in
// flight, the result is discarded without touching the transcript.
//
// On fetch failure the current transcript is kept; if the transcript is
// empty and a cached snapshot exists, the snapshot is shown instead.
func (s *ConversationStore) LoadHistory(ctx context.Context, threadID int64) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	entries, err := s.api.GetHistory(ctx, threadID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	// Stale result: the user moved on while we were waiting.
	if s.conv.ActiveThreadID != threadID {
		return nil
	}

	if err != nil {
		if s.conv.IsEmpty() {
			s.loadCachedLocked(threadID)
		}
		return err
	}

	s.conv.ReplaceAll(historyToMessages(threadID, entries))
	s.fromCache = false
	s.saveCacheLocked(threadID, entries)
	return nil
}

// =============================================================================
// OPTIMISTIC SEND
// =============================================================================

// AppendOptimistic appends a pending entry for a just-submitted question
// and returns its local id. The entry carries a locally minted id that can
// never collide with a portal-assigned one.
func (s *ConversationStore) AppendOptimistic(question string) model.MessageID {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := model.NewPendingMessage(s.conv.ActiveThreadID, question)
	s.conv.Append(msg)
	return msg.ID
}

// Reconcile applies a send outcome to the transcript.
//
// On failure the optimistic entry is removed and the transcript returns to
// its pre-send state. On success the fetched history replaces the
// transcript wholesale, which retires the optimistic entry and picks up
// anything else that landed server-side in the meantime. Outcomes for a
// thread that is no longer active only remove the optimistic entry's
// bookkeeping; the transcript they targeted is already gone.
func (s *ConversationStore) Reconcile(optimisticID model.MessageID, outcome Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if outcome.Err != nil {
		s.conv.RemoveByID(optimisticID)
		return
	}

	// Stale success: the user switched threads mid-send. The answer is
	// safely on the server; the next load of that thread will show it.
	if s.conv.ActiveThreadID != outcome.ThreadID {
		s.conv.RemoveByID(optimisticID)
		return
	}

	s.conv.ReplaceAll(historyToMessages(outcome.ThreadID, outcome.History))
	s.fromCache = false
	s.saveCacheLocked(outcome.ThreadID, outcome.History)
}

// ForgetCached drops the cached snapshot for a deleted thread.
func (s *ConversationStore) ForgetCached(threadID int64) {
	if s.cache == nil {
		return
	}
	// Best effort; a stale snapshot for a dead thread is unreachable anyway.
	_ = s.cache.Delete(threadID)
}

// =============================================================================
// CACHE PLUMBING
// =============================================================================

// loadCachedLocked swaps in the cached snapshot for the thread if one
// exists. Caller holds s.mu.
func (s *ConversationStore) loadCachedLocked(threadID int64) bool {
	if s.cache == nil {
		return false
	}
	snap, err := s.cache.Load(threadID)
	if err != nil {
		return false
	}

	msgs := make([]*model.Message, 0, len(snap.Messages))
	for _, m := range snap.Messages {
		msgs = append(msgs, model.NewAnsweredMessage(
			threadID, m.ID, m.Question, m.Answer, m.Subject, parseEntryTime(m.CreatedAt)))
	}
	s.conv.ReplaceAll(msgs)
	s.fromCache = true
	return true
}

// saveCacheLocked persists the authoritative history. Failures are ignored;
// the cache is a convenience, not a requirement. Caller holds s.mu.
func (s *ConversationStore) saveCacheLocked(threadID int64, entries []api.HistoryEntry) {
	if s.cache == nil {
		return
	}
	cached := make([]storage.CachedMessage, 0, len(entries))
	for _, e := range entries {
		cached = append(cached, storage.CachedMessage{
			ID:        e.ID,
			Question:  e.Question,
			Answer:    e.Answer,
			Subject:   e.Subject,
			CreatedAt: e.CreatedAt,
		})
	}
	_ = s.cache.Save(threadID, cached)
}

// =============================================================================
// CONVERSION
// =============================================================================

// historyToMessages converts portal history entries into transcript
// messages, preserving the portal's order.
func historyToMessages(threadID int64, entries []api.HistoryEntry) []*model.Message {
	msgs := make([]*model.Message, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, model.NewAnsweredMessage(
			threadID, e.ID, e.Question, e.Answer, e.Subject, parseEntryTime(e.CreatedAt)))
	}
	return msgs
}

// parseEntryTime parses the portal's timestamp, falling back to the zero
// time on malformed input rather than dropping the entry.
func parseEntryTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
