// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP and websocket surface of the
// companion backend.
package handler

import (
	"log/slog"
	"time"

	"github.com/olegiv/companion-go/internal/config"
	"github.com/olegiv/companion-go/internal/hub"
	"github.com/olegiv/companion-go/internal/memory"
	"github.com/olegiv/companion-go/internal/responder"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	cfg       *config.Config
	store     *memory.Store
	hub       *hub.Hub
	responder responder.Responder
	logger    *slog.Logger
	startTime time.Time
}

// New creates a handler with its collaborators injected.
func New(cfg *config.Config, store *memory.Store, h *hub.Hub, r responder.Responder, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		store:     store,
		hub:       h,
		responder: r,
		logger:    logger,
		startTime: time.Now(),
	}
}
