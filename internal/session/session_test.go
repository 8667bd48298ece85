// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/morganforge/owlet-tui/internal/api"
)

// fakeAPI is an in-memory portal. Hooks let tests block or fail specific
// calls to exercise in-flight and failure behavior.
type fakeAPI struct {
	mu        sync.Mutex
	threads   []api.Thread
	histories map[int64][]api.HistoryEntry
	nextID    int64

	listCalls    int
	submitCalls  int
	historyCalls int

	listErr    error
	submitErr  error
	historyErr error

	// submitHook runs inside SubmitQuestion after the call is counted,
	// without the lock held. Used to block a send mid-flight.
	submitHook func()
	// historyHook runs inside GetHistory after the call is counted.
	historyHook func()
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{histories: make(map[int64][]api.HistoryEntry), nextID: 1}
}

func (f *fakeAPI) addThread(title string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.threads = append(f.threads, api.Thread{ID: id, Title: title})
	return id
}

func (f *fakeAPI) setHistory(threadID int64, entries ...api.HistoryEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histories[threadID] = entries
}

func (f *fakeAPI) ListThreads(ctx context.Context, kidID int64) ([]api.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]api.Thread, len(f.threads))
	copy(out, f.threads)
	return out, nil
}

func (f *fakeAPI) CreateThread(ctx context.Context, kidID int64, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.threads = append(f.threads, api.Thread{ID: id, Title: title})
	return nil
}

func (f *fakeAPI) RenameThread(ctx context.Context, kidID, threadID int64, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.threads {
		if f.threads[i].ID == threadID {
			f.threads[i].Title = title
			return nil
		}
	}
	return fmt.Errorf("no thread %d", threadID)
}

func (f *fakeAPI) DeleteThread(ctx context.Context, kidID, threadID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.threads {
		if f.threads[i].ID == threadID {
			f.threads = append(f.threads[:i], f.threads[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no thread %d", threadID)
}

func (f *fakeAPI) SubmitQuestion(ctx context.Context, threadID int64, question string) (api.HistoryEntry, error) {
	f.mu.Lock()
	f.submitCalls++
	hook := f.submitHook
	err := f.submitErr
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return api.HistoryEntry{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	entry := api.HistoryEntry{
		ID:       fmt.Sprintf("srv-%d", len(f.histories[threadID])+1),
		Question: question,
		Answer:   "answer to: " + question,
	}
	f.histories[threadID] = append(f.histories[threadID], entry)
	return entry, nil
}

func (f *fakeAPI) GetHistory(ctx context.Context, threadID int64) ([]api.HistoryEntry, error) {
	f.mu.Lock()
	f.historyCalls++
	hook := f.historyHook
	err := f.historyErr
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]api.HistoryEntry, len(f.histories[threadID]))
	copy(out, f.histories[threadID])
	return out, nil
}

func newEntry(id, question, answer string) api.HistoryEntry {
	return api.HistoryEntry{ID: id, Question: question, Answer: answer}
}

// newSession wires a controller over the fake with no cache.
func newSession(f *fakeAPI) *Controller {
	reg := NewThreadRegistry(f, 1)
	store := NewConversationStore(f, nil)
	coord := NewRequestCoordinator(f)
	return NewController(reg, store, coord)
}
