// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/olegiv/companion-go/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Device firmware does not send an Origin header; browsers testing
	// against a local server are fine to accept too.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Subscribe upgrades the request to a websocket and registers it as a
// push connection for the device named in the query string. The
// connection stays registered until the read loop observes the close.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	if deviceID == "" {
		deviceID = "unknown"
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			"remote_addr", r.RemoteAddr, "error", err)
		return
	}

	conn := hub.NewConnWithTimeout(deviceID, ws, h.cfg.WSWriteTimeout)

	if !h.cfg.DeviceAllowed(deviceID) {
		h.logger.Warn("websocket subscription rejected",
			"device_id", deviceID, "remote_addr", r.RemoteAddr)
		_ = conn.CloseWithCode(websocket.ClosePolicyViolation, "device not allowed")
		return
	}

	h.hub.Register(conn)
	defer func() {
		h.hub.Unregister(conn)
		_ = conn.Close()
	}()

	// Read loop: the subscribe socket is push-only, so inbound frames are
	// drained and discarded until the peer closes.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read error",
					"device_id", deviceID, "conn_id", conn.ID(), "error", err)
			}
			return
		}
	}
}
