// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat threads, messages,
// and the per-thread conversation session.
package model

import "time"

// Thread is a named conversation channel belonging to one kid. Thread ids
// are assigned by the portal and unique within a kid; titles are
// user-editable and may collide.
type Thread struct {
	ID    int64  `json:"id"`
	KidID int64  `json:"kid_id"`
	Title string `json:"title"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// DisplayTitle returns the thread title, or a placeholder when the server
// sent an empty one.
func (t Thread) DisplayTitle() string {
	if t.Title == "" {
		return "Untitled"
	}
	return t.Title
}
