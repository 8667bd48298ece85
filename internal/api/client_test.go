// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a test server with a fixed token.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&ClientConfig{
		BaseURL:        server.URL,
		RequestsPerSec: 1000, // tests should not be throttled
	}, StaticToken("test-token"))
}

func TestListThreadsDecodesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/kids/chats", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("kid_id"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"status_message": "SUCCESS",
			"data": []map[string]any{
				{"id": 1, "title": "Math Help"},
				{"id": 2, "title": "Science Q&A"},
			},
		})
	})

	threads, err := client.ListThreads(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, int64(1), threads[0].ID)
	assert.Equal(t, "Math Help", threads[0].Title)
}

func TestNonSuccessStatusIsApplicationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200 with a failing body status: still an application error.
		json.NewEncoder(w).Encode(map[string]any{
			"status_message": "CHAT_NOT_FOUND",
			"data":           map[string]any{"message": "chat does not exist"},
		})
	})

	_, err := client.GetHistory(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, IsApplication(err))
	assert.Contains(t, err.Error(), "chat does not exist")
}

func TestUnauthorizedIsSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListThreads(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // immediately, so the address refuses connections

	client := NewClient(&ClientConfig{
		BaseURL:        server.URL,
		RequestsPerSec: 1000,
	}, nil)

	_, err := client.ListThreads(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestSubmitQuestionSendsBodyAndDecodesEntry(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/kids/chats/7/conversation", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "What is 7x8?", body["question"])

		json.NewEncoder(w).Encode(map[string]any{
			"status_message": "SUCCESS",
			"data": map[string]any{
				"id":         "q-550",
				"question":   "What is 7x8?",
				"answer":     "7 times 8 is 56.",
				"subject":    "math",
				"created_at": "2025-03-01T10:00:00Z",
			},
		})
	})

	entry, err := client.SubmitQuestion(context.Background(), 7, "What is 7x8?")
	require.NoError(t, err)
	assert.Equal(t, "q-550", entry.ID)
	assert.Equal(t, "7 times 8 is 56.", entry.Answer)
	assert.Equal(t, "math", entry.Subject)
}

func TestRenameAndDeleteThreadPaths(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{
			"status_message": "SUCCESS",
			"data":           map[string]any{"message": "ok"},
		})
	})

	require.NoError(t, client.RenameThread(context.Background(), 42, 7, "Science Q&A"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/kids/chats/7", gotPath)

	require.NoError(t, client.DeleteThread(context.Background(), 42, 7))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/kids/chats/7", gotPath)
}

func TestLoginReturnsToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"status_message": "SUCCESS",
			"data":           map[string]any{"token": "issued-token"},
		})
	})

	resp, err := client.Login(context.Background(), "parent@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", resp.Token)
}

func TestHTTPErrorPrefersServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"detail": "title must not be empty",
		})
	})

	err := client.CreateThread(context.Background(), 42, "")
	require.Error(t, err)
	assert.True(t, IsApplication(err))
	assert.Contains(t, UserMessage(err), "title must not be empty")
}

func TestDecodeNullData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status_message": "SUCCESS",
			"data":           nil,
		})
	})

	threads, err := client.ListThreads(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, threads)
}
