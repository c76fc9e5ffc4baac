// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hub tracks the open push connections per device and fans
// payloads out to them. It is the single source of truth for which
// devices are reachable right now.
package hub

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/olegiv/companion-go/internal/model"
)

// Hub maps a device id to its set of currently open connections.
// Membership changes only on register and unregister; broadcast never
// mutates the set. All methods are safe for concurrent use. Socket I/O
// happens outside the registry lock, so a slow connection on one device
// never blocks operations on another.
type Hub struct {
	logger *slog.Logger

	mu    sync.RWMutex
	conns map[string]map[*Conn]struct{}
}

// New creates an empty hub.
func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		conns:  make(map[string]map[*Conn]struct{}),
	}
}

// Register adds a connection to its device's set and sends the one-time
// hello frame to that connection only, never to siblings.
func (h *Hub) Register(conn *Conn) {
	deviceID := conn.DeviceID()

	h.mu.Lock()
	set, ok := h.conns[deviceID]
	if !ok {
		set = make(map[*Conn]struct{})
		h.conns[deviceID] = set
	}
	set[conn] = struct{}{}
	total := len(set)
	h.mu.Unlock()

	hello := model.Payload{
		Kind: model.KindHello,
		Text: fmt.Sprintf("Connected to companion server as %s", deviceID),
	}
	if err := conn.Send(hello); err != nil {
		h.logger.Warn("failed to send hello frame",
			"device_id", deviceID, "conn_id", conn.ID(), "error", err)
	}

	h.logger.Info("connection registered",
		"device_id", deviceID, "conn_id", conn.ID(), "open_conns", total)
}

// Unregister removes a connection from its device's set. Idempotent:
// removing an absent connection is a no-op. Must be called exactly once
// per observed close, from whichever path sees it first.
func (h *Hub) Unregister(conn *Conn) {
	deviceID := conn.DeviceID()

	h.mu.Lock()
	set, ok := h.conns[deviceID]
	if ok {
		if _, present := set[conn]; present {
			delete(set, conn)
			if len(set) == 0 {
				delete(h.conns, deviceID)
			}
			h.mu.Unlock()
			h.logger.Info("connection unregistered",
				"device_id", deviceID, "conn_id", conn.ID())
			return
		}
	}
	h.mu.Unlock()
}

// Broadcast delivers a payload to every open connection for the device,
// best-effort. A failed write is logged and skipped; it never removes the
// connection (removal happens only via the close path) and never prevents
// delivery to siblings. Unknown device ids are a silent no-op. Returns
// the number of successful deliveries.
func (h *Hub) Broadcast(deviceID string, p model.Payload) int {
	h.mu.RLock()
	set, ok := h.conns[deviceID]
	if !ok {
		h.mu.RUnlock()
		return 0
	}
	targets := make([]*Conn, 0, len(set))
	for c := range set {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.Send(p); err != nil {
			h.logger.Debug("broadcast write failed",
				"device_id", deviceID, "conn_id", c.ID(), "kind", p.Kind, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

// Count returns the number of open connections for a device.
func (h *Hub) Count(deviceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[deviceID])
}

// ConnectionCount returns the total number of open connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, set := range h.conns {
		total += len(set)
	}
	return total
}

// CloseAll closes every open connection and clears the registry. Used on
// shutdown; clients are expected to reconnect after a restart.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	all := make([]*Conn, 0)
	for _, set := range h.conns {
		for c := range set {
			all = append(all, c)
		}
	}
	h.conns = make(map[string]map[*Conn]struct{})
	h.mu.Unlock()

	for _, c := range all {
		if err := c.Close(); err != nil {
			h.logger.Debug("error closing connection", "conn_id", c.ID(), "error", err)
		}
	}
	if len(all) > 0 {
		h.logger.Info("closed all connections", "count", len(all))
	}
}
