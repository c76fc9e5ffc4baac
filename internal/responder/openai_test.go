// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package responder

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newStubOpenAI returns an OpenAI responder pointed at a stub server.
func newStubOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	o := NewOpenAI("test-key", "test-model", testLogger())
	o.baseURL = srv.URL
	return o
}

func TestOpenAIGenerateReply(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	o := newStubOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Hello from the stub!"}},
			},
		})
	})

	reply, err := o.GenerateReply(context.Background(), "dev-001", "hi")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply != "Hello from the stub!" {
		t.Errorf("reply = %q", reply)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody["model"] != "test-model" {
		t.Errorf("model = %v", gotBody["model"])
	}
}

func TestOpenAIErrorStatus(t *testing.T) {
	o := newStubOpenAI(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	})

	if _, err := o.GenerateReply(context.Background(), "dev-001", "hi"); err == nil {
		t.Fatal("GenerateReply should surface non-200 responses")
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	o := newStubOpenAI(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	if _, err := o.GenerateReply(context.Background(), "dev-001", "hi"); err == nil {
		t.Fatal("GenerateReply should fail on empty choices")
	}
}
