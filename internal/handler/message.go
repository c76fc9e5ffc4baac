// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/olegiv/companion-go/internal/model"
)

// replyFallback is returned when the responder fails, so the device
// always hears something.
const replyFallback = "Sorry, I had trouble thinking of a reply. Try again in a bit."

type messageRequest struct {
	DeviceID string `json:"deviceId"`
	Text     string `json:"text"`
}

// Message handles a text submission from a device: records it, generates
// a companion reply, and pushes the reply to the device's live
// connections.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DeviceID == "" || req.Text == "" {
		writeJSONError(w, http.StatusBadRequest, "deviceId and text required")
		return
	}
	if !h.cfg.DeviceAllowed(req.DeviceID) {
		writeJSONError(w, http.StatusForbidden, "device not allowed")
		return
	}

	h.store.Append(req.DeviceID, model.NewUserText(req.Text))

	reply, err := h.responder.GenerateReply(r.Context(), req.DeviceID, req.Text)
	if err != nil {
		h.logger.Error("responder failed", "device_id", req.DeviceID, "error", err)
		reply = replyFallback
	}

	h.hub.Broadcast(req.DeviceID, model.Payload{Kind: model.KindReply, Text: reply})

	writeJSONSuccess(w, map[string]any{"reply": reply})
}
