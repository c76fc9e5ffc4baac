// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"
)

// Health reports liveness plus a couple of cheap gauges.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"connections":    h.hub.ConnectionCount(),
	})
}
