// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage caches the last successfully fetched transcript per
// thread in a local SQLite database.
package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotCached is returned when no snapshot exists for a thread.
	ErrNotCached = errors.New("no cached transcript for thread")
)

// =============================================================================
// CACHED TYPES
// =============================================================================

// CachedMessage is one question/answer pair in a cached transcript, stored
// in server order.
type CachedMessage struct {
	ID        string
	Question  string
	Answer    string
	Subject   string
	CreatedAt string
}

// Snapshot is a cached transcript plus the time it was taken.
type Snapshot struct {
	ThreadID int64
	CachedAt time.Time
	Messages []CachedMessage
}

// =============================================================================
// TRANSCRIPT CACHE
// =============================================================================

// TranscriptCache is a SQLite-backed store of last known-good transcripts.
// It is safe for concurrent use.
type TranscriptCache struct {
	mu sync.Mutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	thread_id INTEGER PRIMARY KEY,
	cached_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	thread_id INTEGER NOT NULL,
	position  INTEGER NOT NULL,
	remote_id TEXT NOT NULL,
	question  TEXT NOT NULL,
	answer    TEXT NOT NULL,
	subject   TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	PRIMARY KEY (thread_id, position)
);
`

// Open opens (creating if necessary) the cache database at path.
func Open(path string) (*TranscriptCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single writer keeps SQLite happy without WAL tuning.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &TranscriptCache{db: db}, nil
}

// Close releases the database handle.
func (c *TranscriptCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Close()
}

// =============================================================================
// SAVE / LOAD
// =============================================================================

// Save replaces the cached transcript for a thread wholesale, mirroring the
// wholesale history refetch it was taken from.
func (c *TranscriptCache) Save(threadID int64, msgs []CachedMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM messages WHERE thread_id = ?`, threadID); err != nil {
		return err
	}
	for i, msg := range msgs {
		_, err := tx.Exec(
			`INSERT INTO messages (thread_id, position, remote_id, question, answer, subject, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			threadID, i, msg.ID, msg.Question, msg.Answer, msg.Subject, msg.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(
		`INSERT INTO snapshots (thread_id, cached_at) VALUES (?, ?)
		 ON CONFLICT(thread_id) DO UPDATE SET cached_at = excluded.cached_at`,
		threadID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Load returns the cached snapshot for a thread, or ErrNotCached.
func (c *TranscriptCache) Load(threadID int64) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var cachedAt string
	err := c.db.QueryRow(`SELECT cached_at FROM snapshots WHERE thread_id = ?`, threadID).Scan(&cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, err
	}

	rows, err := c.db.Query(
		`SELECT remote_id, question, answer, subject, created_at
		 FROM messages WHERE thread_id = ? ORDER BY position`,
		threadID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap := &Snapshot{ThreadID: threadID}
	if ts, err := time.Parse(time.RFC3339, cachedAt); err == nil {
		snap.CachedAt = ts
	}

	for rows.Next() {
		var msg CachedMessage
		if err := rows.Scan(&msg.ID, &msg.Question, &msg.Answer, &msg.Subject, &msg.CreatedAt); err != nil {
			return nil, err
		}
		snap.Messages = append(snap.Messages, msg)
	}
	return snap, rows.Err()
}

// Delete drops the cached transcript for a thread. Called when the thread
// itself is deleted on the portal.
func (c *TranscriptCache) Delete(threadID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM messages WHERE thread_id = ?`, threadID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM snapshots WHERE thread_id = ?`, threadID); err != nil {
		return err
	}
	return tx.Commit()
}
