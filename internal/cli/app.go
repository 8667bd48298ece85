// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared runtime plumbing for command handlers.
package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/morganforge/owlet-tui/internal/api"
	"github.com/morganforge/owlet-tui/internal/auth"
	"github.com/morganforge/owlet-tui/internal/config"
	"github.com/morganforge/owlet-tui/internal/session"
	"github.com/morganforge/owlet-tui/internal/storage"
)

// App bundles the pieces every command handler needs: loaded config, the
// token store, and the portal client. Built once in main and passed down.
type App struct {
	Config *config.Config
	Tokens *auth.TokenStore
	Client *api.Client
}

// NewApp loads configuration and wires the portal client.
func NewApp(args Args) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	tokens := auth.NewTokenStore(cfg.Auth.TokenFile, cfg.Auth.EncryptToken)

	clientCfg := &api.ClientConfig{
		BaseURL:        cfg.Server.BaseURL,
		Timeout:        time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		RequestsPerSec: cfg.Server.RequestsPerSec,
	}
	if args.Verbose {
		clientCfg.Logger = log.New(os.Stderr, "api: ", log.Ltime)
	} else if f, err := os.OpenFile(filepath.Join(config.Dir(), "owlet.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
		clientCfg.Logger = log.New(f, "api: ", log.LstdFlags)
	}

	return &App{
		Config: cfg,
		Tokens: tokens,
		Client: api.NewClient(clientCfg, tokens),
	}, nil
}

// KidID resolves the kid profile for this invocation: the --kid flag wins,
// then the configured default.
func (a *App) KidID(args Args) (int64, error) {
	if args.KidID > 0 {
		return args.KidID, nil
	}
	if a.Config.Chat.DefaultKidID > 0 {
		return a.Config.Chat.DefaultKidID, nil
	}
	return 0, ErrMissingArgument("kid",
		"pass --kid ID or set chat.default_kid_id (owlet config set chat.default_kid_id 3)")
}

// OpenCache opens the transcript cache if caching is enabled. Returns nil
// (no cache) on failure; chat works without it.
func (a *App) OpenCache() *storage.TranscriptCache {
	if !a.Config.Chat.CacheEnabled {
		return nil
	}
	cache, err := storage.Open(a.Config.Chat.CachePath)
	if err != nil {
		return nil
	}
	return cache
}

// NewSession wires a chat session controller for the resolved kid.
func (a *App) NewSession(kidID int64, cache *storage.TranscriptCache) *session.Controller {
	registry := session.NewThreadRegistry(a.Client, kidID)
	store := session.NewConversationStore(a.Client, cache)
	coord := session.NewRequestCoordinator(a.Client)
	return session.NewController(registry, store, coord)
}
