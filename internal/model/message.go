// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat threads, messages,
// and the per-thread conversation session.
package model

import (
	"sync/atomic"
	"time"
)

// =============================================================================
// MESSAGE ID
// =============================================================================

// MessageID identifies a message in a transcript. Server-assigned ids and
// locally generated optimistic ids live in disjoint namespaces: a durable
// message has a non-empty Remote and a zero Local, an optimistic message has
// an empty Remote and a non-zero Local. The two can therefore never compare
// equal, regardless of what the server assigns.
type MessageID struct {
	// Remote is the server-assigned identifier, empty for optimistic entries.
	Remote string `json:"remote,omitempty"`
	// Local is the client-side sequence number, zero for durable entries.
	Local int64 `json:"local,omitempty"`
}

// localSeq is the process-wide counter for optimistic message ids.
var localSeq atomic.Int64

// NewLocalID returns a fresh optimistic message id.
func NewLocalID() MessageID {
	return MessageID{Local: localSeq.Add(1)}
}

// RemoteID wraps a server-assigned identifier.
func RemoteID(id string) MessageID {
	return MessageID{Remote: id}
}

// IsLocal reports whether the id belongs to an optimistic, not yet
// server-confirmed message.
func (id MessageID) IsLocal() bool {
	return id.Local != 0
}

// IsZero reports whether the id is unset.
func (id MessageID) IsZero() bool {
	return id.Remote == "" && id.Local == 0
}

// =============================================================================
// MESSAGE STATE
// =============================================================================

// State tags a message's lifecycle position within a send turn.
type State int

const (
	// StatePending marks an optimistic message whose answer is in flight.
	StatePending State = iota
	// StateAnswered marks a durable message with a server-provided answer.
	StateAnswered
	// StateFailed marks a message whose send failed. Failed messages are
	// removed from the transcript immediately, so this state is only ever
	// observable in the instant between reconciliation and removal.
	StateFailed
)

// String returns the state name for logging and display.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAnswered:
		return "answered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one question/answer exchange inside a thread.
type Message struct {
	ID       MessageID `json:"id"`
	ThreadID int64     `json:"thread_id"`

	// Question is the text submitted by the user. Immutable once created.
	Question string `json:"question"`
	// Answer is the tutor's response. Empty while the message is pending.
	Answer string `json:"answer,omitempty"`
	// Subject is the topic tag the tutor assigned to the question.
	Subject string `json:"subject,omitempty"`

	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPendingMessage creates an optimistic message for a question that has
// just been submitted but not yet acknowledged by the portal.
func NewPendingMessage(threadID int64, question string) *Message {
	return &Message{
		ID:        NewLocalID(),
		ThreadID:  threadID,
		Question:  question,
		State:     StatePending,
		CreatedAt: time.Now(),
	}
}

// NewAnsweredMessage creates a durable message from server data.
func NewAnsweredMessage(threadID int64, id, question, answer, subject string, createdAt time.Time) *Message {
	return &Message{
		ID:        RemoteID(id),
		ThreadID:  threadID,
		Question:  question,
		Answer:    answer,
		Subject:   subject,
		State:     StateAnswered,
		CreatedAt: createdAt,
	}
}

// IsPending reports whether the message is still awaiting its answer.
func (m *Message) IsPending() bool {
	return m.State == StatePending
}

// Preview returns a truncated single-line preview of the question.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Question)
	if len(runes) <= maxLen {
		return m.Question
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
