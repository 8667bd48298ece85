// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tutoring portal REST API.
package api

import "errors"

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes client errors for handling.
type ErrorKind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown ErrorKind = iota
	// KindNetwork is a transport-level failure: no response, DNS, timeout,
	// connection reset. Never retried automatically.
	KindNetwork
	// KindApplication means the transport succeeded but the portal reported
	// a non-SUCCESS status_message.
	KindApplication
	// KindUnauthorized means the portal rejected the bearer token.
	KindUnauthorized
	// KindDecode means the response body did not match the envelope.
	KindDecode
)

// String returns the kind name for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindApplication:
		return "application"
	case KindUnauthorized:
		return "unauthorized"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a classified portal client error.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same kind, so sentinel comparisons like
// errors.Is(err, api.ErrUnauthorized) work regardless of message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for easy checking.
var (
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "not logged in or session expired"}
	ErrNetwork      = &Error{Kind: KindNetwork, Message: "portal unreachable"}
)

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// IsApplication reports whether err is a portal-reported failure.
func IsApplication(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindApplication
}

// UserMessage returns the text to surface for err. Application errors carry
// the server-supplied message; everything else gets a short generic line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindApplication:
			return apiErr.Message
		case KindUnauthorized:
			return "Not logged in or session expired. Run `owlet login`."
		case KindNetwork:
			return "Cannot reach the tutoring portal. Check your connection and try again."
		}
	}
	return "Something went wrong. Please try again."
}
