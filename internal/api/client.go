// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tutoring portal REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the portal API client.
const (
	// DefaultBaseURL is the portal API base URL used when none is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSec is the client-side request throttle. The portal
	// serves interactive traffic; a small burst is enough for one user.
	DefaultRequestsPerSec = 5

	// MaxResponseSize is the maximum allowed response body size.
	// Response size limit prevents memory exhaustion on a misbehaving server.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP transport for all portal requests.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// =============================================================================
// CREDENTIALS
// =============================================================================

// CredentialProvider supplies the bearer token attached to every request.
// The token is injected rather than read from ambient global state so the
// client depends only on an abstract "authorized request" capability.
type CredentialProvider interface {
	// Token returns the current session token. ok is false when the user
	// is not logged in; requests are then sent without an Authorization
	// header and the portal answers 401.
	Token() (token string, ok bool)
}

// StaticToken is a CredentialProvider for a fixed token. Used in tests and
// for one-shot scripted invocations.
type StaticToken string

// Token implements CredentialProvider.
func (t StaticToken) Token() (string, bool) {
	return string(t), t != ""
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the portal client.
type ClientConfig struct {
	// BaseURL is the portal API base URL.
	BaseURL string

	// Timeout for requests (default: 30s).
	Timeout time.Duration

	// RequestsPerSec caps outgoing request rate (default: 5/s).
	RequestsPerSec int

	// Logger receives debug lines. Nil disables logging.
	Logger *log.Logger
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:        DefaultBaseURL,
		Timeout:        DefaultTimeout,
		RequestsPerSec: DefaultRequestsPerSec,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the tutoring portal API.
// It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	creds      CredentialProvider
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a portal client with the given configuration and
// credential provider. A nil config uses defaults; a nil provider sends
// unauthenticated requests.
func NewClient(config *ClientConfig, creds CredentialProvider) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.RequestsPerSec == 0 {
		config.RequestsPerSec = DefaultRequestsPerSec
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   config.Timeout,
		},
		creds:   creds,
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSec), config.RequestsPerSec),
		logger:  config.Logger,
	}
}

// BaseURL returns the configured portal base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// REQUEST EXECUTION
// =============================================================================

// do executes one portal request and returns the envelope's data payload.
// All transport and envelope failures are converted to *Error here; callers
// never see raw transport errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "request cancelled", Cause: err}
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, Message: "failed to encode request body", Cause: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token, ok := c.creds.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logf("%s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: KindNetwork, Message: "request timed out", Cause: err}
		}
		return nil, &Error{Kind: KindNetwork, Message: "portal unreachable", Cause: err}
	}
	defer resp.Body.Close()

	// Size-limited read protects against unbounded response bodies.
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "failed to read response", Cause: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 500:
		return nil, &Error{Kind: KindApplication, Message: serverMessage(data, "portal error")}
	case resp.StatusCode >= 400:
		return nil, &Error{Kind: KindApplication, Message: serverMessage(data, "request rejected")}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &Error{Kind: KindDecode, Message: "unexpected response format", Cause: err}
	}

	// Double-signaling: the body status is checked even on HTTP 200.
	if env.StatusMessage != statusSuccess {
		return nil, &Error{Kind: KindApplication, Message: serverMessage(data, "request failed ("+env.StatusMessage+")")}
	}

	return env.Data, nil
}

// decode unmarshals an envelope data payload into T.
func decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &Error{Kind: KindDecode, Message: "unexpected response payload", Cause: err}
	}
	return out, nil
}

// serverMessage extracts a human-readable message from an error body,
// falling back to the supplied default. The portal puts messages either in
// data.message or in a top-level detail field.
func serverMessage(data []byte, fallback string) string {
	var probe struct {
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &probe); err == nil {
		if probe.Data.Message != "" {
			return probe.Data.Message
		}
		var detail string
		if len(probe.Detail) > 0 && json.Unmarshal(probe.Detail, &detail) == nil && detail != "" {
			return detail
		}
	}
	return fallback
}

// logf writes a debug line when a logger is configured.
func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
