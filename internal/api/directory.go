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

// The directory surface: auth, user, and kid profile management. The chat
// core only needs kid ids from here; everything else serves the CLI.

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	raw, err := c.do(ctx, http.MethodPost, "/login", nil, LoginRequest{Email: email, Password: password})
	if err != nil {
		return LoginResponse{}, err
	}
	return decode[LoginResponse](raw)
}

// VerifyEmail checks whether an email address is known to the portal.
func (c *Client) VerifyEmail(ctx context.Context, email string) error {
	query := url.Values{"email": {email}}
	_, err := c.do(ctx, http.MethodGet, "/users/verify-email", query, nil)
	return err
}

// SendVerification starts registration by mailing a verification link.
func (c *Client) SendVerification(ctx context.Context, req RegisterRequest) (SuccessMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/users/send-verification", nil, req)
	if err != nil {
		return SuccessMessage{}, err
	}
	return decode[SuccessMessage](raw)
}

// ForgotPassword requests a password-reset mail.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/users/forgot-password", nil, map[string]string{"email": email})
	return err
}

// SetPassword completes registration or a reset using the mailed token.
func (c *Client) SetPassword(ctx context.Context, req SetPasswordRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/users/set-password", nil, req)
	return err
}

// UserInfo returns the profile of the logged-in user.
func (c *Client) UserInfo(ctx context.Context) (UserInfo, error) {
	raw, err := c.do(ctx, http.MethodGet, "/users/info", nil, nil)
	if err != nil {
		return UserInfo{}, err
	}
	return decode[UserInfo](raw)
}

// =============================================================================
// KID ENDPOINTS
// =============================================================================

// CreateKid adds a child profile.
func (c *Client) CreateKid(ctx context.Context, req KidRequest) (SuccessMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/kids", nil, req)
	if err != nil {
		return SuccessMessage{}, err
	}
	return decode[SuccessMessage](raw)
}

// ListKids returns the kid profiles for the logged-in parent.
func (c *Client) ListKids(ctx context.Context, params *ListParams) ([]Kid, error) {
	raw, err := c.do(ctx, http.MethodGet, "/kids", listQuery(params), nil)
	if err != nil {
		return nil, err
	}
	return decode[[]Kid](raw)
}

// GetKid returns one kid profile by id.
func (c *Client) GetKid(ctx context.Context, kidID int64) (Kid, error) {
	raw, err := c.do(ctx, http.MethodGet, "/kids/data/"+strconv.FormatInt(kidID, 10), nil, nil)
	if err != nil {
		return Kid{}, err
	}
	return decode[Kid](raw)
}

// UpdateKid updates a kid profile.
func (c *Client) UpdateKid(ctx context.Context, kidID int64, req KidRequest) error {
	_, err := c.do(ctx, http.MethodPut, "/kids/data/"+strconv.FormatInt(kidID, 10), nil, req)
	return err
}

// DeleteKid removes a kid profile.
func (c *Client) DeleteKid(ctx context.Context, kidID int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/kids/data/"+strconv.FormatInt(kidID, 10), nil, nil)
	return err
}

// listQuery converts optional list parameters into query values.
func listQuery(params *ListParams) url.Values {
	if params == nil {
		return nil
	}
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.SortBy != "" {
		query.Set("sort_by", params.SortBy)
	}
	if params.OrderBy != "" {
		query.Set("order_by", params.OrderBy)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(params.PageSize))
	}
	return query
}
