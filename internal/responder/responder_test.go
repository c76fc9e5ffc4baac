// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package responder

import (
	"context"
	"strings"
	"testing"
)

func TestStaticIntentRules(t *testing.T) {
	r := NewStatic()

	tests := []struct {
		name string
		text string
		want string // substring the reply must contain
	}{
		{"weather intent", "what's the weather like?", "Weather"},
		{"reminder intent", "remind me to stretch", "reminder"},
		{"greeting", "hello there", "Hey"},
		{"greeting short", "hi", "Hey"},
		{"fallback echoes input", "tell me a story", "tell me a story"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.GenerateReply(context.Background(), "dev-001", tt.text)
			if err != nil {
				t.Fatalf("GenerateReply: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("reply %q should contain %q", got, tt.want)
			}
		})
	}
}
