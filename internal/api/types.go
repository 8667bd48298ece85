// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tutoring portal REST API.
package api

import "encoding/json"

// =============================================================================
// ENVELOPE
// =============================================================================

// statusSuccess is the status_message value the portal uses for success.
const statusSuccess = "SUCCESS"

// envelope is the canonical response wrapper for every portal endpoint.
// List endpoints may additionally carry pagination fields.
type envelope struct {
	StatusMessage string          `json:"status_message"`
	Page          *int            `json:"page,omitempty"`
	PageSize      *int            `json:"page_size,omitempty"`
	TotalItems    *int            `json:"total_items,omitempty"`
	Data          json.RawMessage `json:"data"`
}

// SuccessMessage is the portal's generic mutation acknowledgement.
type SuccessMessage struct {
	ID      *int64 `json:"id,omitempty"`
	Message string `json:"message"`
}

// =============================================================================
// CHAT TYPES
// =============================================================================

// Thread is a named chat thread as returned by GET /kids/chats.
type Thread struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// HistoryEntry is one question/answer pair as returned by the conversation
// history endpoint. Note that conversation ids are strings on the wire,
// unlike thread and kid ids.
type HistoryEntry struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Subject   string `json:"subject"`
	CreatedAt string `json:"created_at"` // ISO datetime
}

// titleRequest is the body for thread create and rename.
type titleRequest struct {
	Title string `json:"title"`
}

// questionRequest is the body for question submission.
type questionRequest struct {
	Question string `json:"question"`
}

// =============================================================================
// AUTH TYPES
// =============================================================================

// LoginRequest is the body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued on login.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the body for POST /users/send-verification.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
}

// SetPasswordRequest is the body for POST /users/set-password.
type SetPasswordRequest struct {
	InvitationToken string `json:"invitation_token"`
	Password        string `json:"password"`
}

// UserInfo describes the logged-in user, from GET /users/info.
type UserInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// =============================================================================
// KID TYPES
// =============================================================================

// Kid is a child profile as returned by the kids endpoints.
type Kid struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	School    string `json:"school"`
	Standard  string `json:"standard"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// KidRequest is the body for kid create and update.
type KidRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	School   string `json:"school"`
	Standard string `json:"standard"`
}

// ListParams are optional query parameters for list endpoints.
type ListParams struct {
	Search   string
	SortBy   string
	OrderBy  string // "asc" or "desc"
	Page     int
	PageSize int
}
