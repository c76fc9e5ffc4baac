// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"image"
	"net/http"

	// Image decoders for dimension sniffing. Device cameras mostly send
	// JPEG; the rest cover what hobbyist firmware produces.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/olegiv/companion-go/internal/model"
)

// maxMultipartMemory bounds how much of the upload is buffered in memory
// before spilling to temp files.
const maxMultipartMemory = 1 << 20 // 1 MiB

// Analyze handles an image submission (multipart field "image" plus
// deviceId and optional prompt): records an image event and pushes a
// vision reply to the device's live connections.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid or oversized multipart body")
		return
	}

	deviceID := r.FormValue("deviceId")
	prompt := r.FormValue("prompt")

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "deviceId and image required")
		return
	}
	defer func() { _ = file.Close() }()

	if deviceID == "" {
		writeJSONError(w, http.StatusBadRequest, "deviceId and image required")
		return
	}

	if !h.cfg.DeviceAllowed(deviceID) {
		writeJSONError(w, http.StatusForbidden, "device not allowed")
		return
	}

	// Best-effort dimension sniff; an undecodable image is still recorded.
	width, height := 0, 0
	if imgCfg, _, err := image.DecodeConfig(file); err == nil {
		width, height = imgCfg.Width, imgCfg.Height
	}

	h.store.Append(deviceID, model.NewImage(header.Size, prompt, width, height))

	reply := fmt.Sprintf("I received an image of %d bytes", header.Size)
	if width > 0 && height > 0 {
		reply = fmt.Sprintf("I received a %dx%d image of %d bytes", width, height, header.Size)
	}
	if prompt != "" {
		reply += fmt.Sprintf(" with prompt: %s", prompt)
	}
	reply += "."

	h.hub.Broadcast(deviceID, model.Payload{Kind: model.KindVision, Text: reply})

	writeJSONSuccess(w, map[string]any{"reply": reply})
}
