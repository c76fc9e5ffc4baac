// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
)

// Memory returns a point-in-time snapshot of a device's event log.
// Unknown devices get an empty list, never an error.
func (h *Handler) Memory(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	if deviceID == "" {
		writeJSONError(w, http.StatusBadRequest, "deviceId required")
		return
	}
	if !h.cfg.DeviceAllowed(deviceID) {
		writeJSONError(w, http.StatusForbidden, "device not allowed")
		return
	}

	writeJSONSuccess(w, map[string]any{"events": h.store.List(deviceID)})
}

// Checklist returns a device's current checklist, falling back to the
// built-in default when the device never set one.
func (h *Handler) Checklist(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	if deviceID == "" {
		writeJSONError(w, http.StatusBadRequest, "deviceId required")
		return
	}
	if !h.cfg.DeviceAllowed(deviceID) {
		writeJSONError(w, http.StatusForbidden, "device not allowed")
		return
	}

	writeJSONSuccess(w, map[string]any{"items": h.store.GetChecklist(deviceID)})
}

type checklistUpdateRequest struct {
	DeviceID string   `json:"deviceId"`
	Items    []string `json:"items"`
}

// UpdateChecklist replaces a device's checklist wholesale. An empty items
// list is valid and shadows the default.
func (h *Handler) UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	var req checklistUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DeviceID == "" || req.Items == nil {
		writeJSONError(w, http.StatusBadRequest, "deviceId and items required")
		return
	}
	if !h.cfg.DeviceAllowed(req.DeviceID) {
		writeJSONError(w, http.StatusForbidden, "device not allowed")
		return
	}

	h.store.SetChecklist(req.DeviceID, req.Items)
	writeJSONSuccess(w, map[string]any{"items": req.Items})
}
