// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify provides the gateway the scheduler pushes through: one
// narrow interface that both broadcasts to a device and records the
// action in its memory log.
package notify

import (
	"log/slog"

	"github.com/olegiv/companion-go/internal/model"
)

// Broadcaster fans a payload out to a device's open connections.
type Broadcaster interface {
	Broadcast(deviceID string, p model.Payload) int
}

// Appender records an event in a device's memory log.
type Appender interface {
	Append(deviceID string, ev model.Event)
}

// Gateway composes broadcast and log append. Both steps run
// unconditionally: the log entry records the intent to notify, not
// confirmed delivery, so a device with zero open connections still gets
// its entry.
type Gateway struct {
	hub    Broadcaster
	store  Appender
	logger *slog.Logger
}

// NewGateway creates a gateway over the given hub and store.
func NewGateway(hub Broadcaster, store Appender, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{hub: hub, store: store, logger: logger}
}

// Notify broadcasts the payload to the device and appends the log entry.
// It never fails; delivery problems are the hub's to log and absorb.
func (g *Gateway) Notify(deviceID string, p model.Payload, entry model.Event) {
	delivered := g.hub.Broadcast(deviceID, p)
	g.store.Append(deviceID, entry)
	g.logger.Debug("notification dispatched",
		"device_id", deviceID, "kind", p.Kind, "delivered", delivered)
}
