// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tutoring portal REST API.
//
// Every response from the portal follows one canonical envelope:
//
//	{ "status_message": "SUCCESS", "data": ... }
//
// A non-"SUCCESS" status_message is an application-level failure even when
// the transport reports HTTP 200. The envelope is checked in exactly one
// place (decoding), never per call site.
//
// Errors are classified into a small taxonomy (network, application,
// unauthorized, decode) so callers can react with errors.Is / kind checks
// instead of string matching. The client attaches a bearer token from an
// injected CredentialProvider and applies a client-side rate limit.
package api
