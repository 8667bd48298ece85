// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tutoring portal REST API.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// =============================================================================
// CHAT THREAD ENDPOINTS
// =============================================================================

// ListThreads returns the named chat threads belonging to a kid.
func (c *Client) ListThreads(ctx context.Context, kidID int64) ([]Thread, error) {
	query := url.Values{"kid_id": {strconv.FormatInt(kidID, 10)}}
	raw, err := c.do(ctx, http.MethodGet, "/kids/chats", query, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]Thread](raw)
}

// CreateThread creates a new named thread for a kid. The portal assigns the
// thread id; callers refresh via ListThreads rather than patching locally.
func (c *Client) CreateThread(ctx context.Context, kidID int64, title string) error {
	query := url.Values{"kid_id": {strconv.FormatInt(kidID, 10)}}
	_, err := c.do(ctx, http.MethodPost, "/kids/chats", query, titleRequest{Title: title})
	return err
}

// RenameThread updates a thread's title.
func (c *Client) RenameThread(ctx context.Context, kidID, threadID int64, title string) error {
	query := url.Values{"kid_id": {strconv.FormatInt(kidID, 10)}}
	_, err := c.do(ctx, http.MethodPut, "/kids/chats/"+strconv.FormatInt(threadID, 10), query, titleRequest{Title: title})
	return err
}

// DeleteThread removes a thread and its conversation.
func (c *Client) DeleteThread(ctx context.Context, kidID, threadID int64) error {
	query := url.Values{"kid_id": {strconv.FormatInt(kidID, 10)}}
	_, err := c.do(ctx, http.MethodDelete, "/kids/chats/"+strconv.FormatInt(threadID, 10), query, nil)
	return err
}

// =============================================================================
// CONVERSATION ENDPOINTS
// =============================================================================

// SubmitQuestion sends a question to the tutor on the given thread and
// returns the created history entry.
func (c *Client) SubmitQuestion(ctx context.Context, threadID int64, question string) (HistoryEntry, error) {
	path := "/kids/chats/" + strconv.FormatInt(threadID, 10) + "/conversation"
	raw, err := c.do(ctx, http.MethodPost, path, nil, questionRequest{Question: question})
	if err != nil {
		return HistoryEntry{}, err
	}
	return decode[HistoryEntry](raw)
}

// GetHistory fetches the full conversation transcript for a thread, in
// server order (chronological ascending).
func (c *Client) GetHistory(ctx context.Context, threadID int64) ([]HistoryEntry, error) {
	path := "/kids/chats/" + strconv.FormatInt(threadID, 10) + "/conversation"
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]HistoryEntry](raw)
}
