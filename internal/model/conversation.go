// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat threads, messages,
// and the per-thread conversation session.
package model

import "time"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the ordered transcript for the currently selected
// thread. It is ephemeral: switching threads replaces its contents, and
// nothing here survives an application restart — the portal owns all
// durable state.
//
// Invariant: Messages always belongs to ActiveThreadID. An ActiveThreadID
// of zero means no thread is selected and Messages is empty.
type Conversation struct {
	ActiveThreadID int64      `json:"active_thread_id"`
	Messages       []*Message `json:"messages"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewConversation creates an empty conversation with no selected thread.
func NewConversation() *Conversation {
	return &Conversation{
		Messages: make([]*Message, 0),
	}
}

// =============================================================================
// THREAD SELECTION
// =============================================================================

// SetActive selects a thread and clears the transcript. The transcript is
// refilled by a history load; until then the conversation shows empty.
// Passing zero deselects.
func (c *Conversation) SetActive(threadID int64) {
	c.ActiveThreadID = threadID
	c.Messages = make([]*Message, 0)
	c.UpdatedAt = time.Now()
}

// HasActive reports whether a thread is currently selected.
func (c *Conversation) HasActive() bool {
	return c.ActiveThreadID != 0
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the transcript.
func (c *Conversation) Append(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// ReplaceAll swaps the transcript wholesale. Server order is authoritative,
// so the slice is stored as-is.
func (c *Conversation) ReplaceAll(msgs []*Message) {
	c.Messages = msgs
	c.UpdatedAt = time.Now()
}

// RemoveByID removes the message with the given id. Returns true if a
// message was removed.
func (c *Conversation) RemoveByID(id MessageID) bool {
	for i, msg := range c.Messages {
		if msg.ID == id {
			c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// GetByID returns the message with the given id, or nil.
func (c *Conversation) GetByID(id MessageID) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// Last returns the most recent message, or nil if the transcript is empty.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// HasPending reports whether any message in the transcript is still
// awaiting its answer.
func (c *Conversation) HasPending() bool {
	for _, msg := range c.Messages {
		if msg.IsPending() {
			return true
		}
	}
	return false
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// IDSet returns the set of message ids currently in the transcript.
// Used by reconciliation checks and tests.
func (c *Conversation) IDSet() map[MessageID]struct{} {
	set := make(map[MessageID]struct{}, len(c.Messages))
	for _, msg := range c.Messages {
		set[msg.ID] = struct{}{}
	}
	return set
}
