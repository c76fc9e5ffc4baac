// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package responder maps an inbound device message to a companion reply.
// Implementations can be swapped without touching the rest of the core.
package responder

import (
	"context"
	"fmt"
	"strings"
)

// Responder generates a reply to a device's text message.
type Responder interface {
	GenerateReply(ctx context.Context, deviceID, text string) (string, error)
}

// Static is a rule-based responder with simple intent matching. It never
// fails and needs no external services.
type Static struct{}

// NewStatic creates the rule-based responder.
func NewStatic() Static {
	return Static{}
}

// GenerateReply implements Responder with fixed intent rules and an echo
// fallback.
func (Static) GenerateReply(_ context.Context, _ string, text string) (string, error) {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "weather"):
		return "Weather: 72°F and clear (stub). I can wire a real API next.", nil
	case strings.Contains(t, "remind"):
		return "Okay! I saved a reminder (stub). I will ping you at the right time.", nil
	case strings.Contains(t, "hello"), strings.Contains(t, "hi"):
		return "Hey! I'm here. Want to check off your morning routine?", nil
	}
	return fmt.Sprintf("You said: %q. I'll get smarter as we integrate real AI + memory.", text), nil
}
