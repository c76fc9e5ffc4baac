// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"io"
	"log/slog"
	"testing"

	"github.com/olegiv/companion-go/internal/model"
)

type fakeBroadcaster struct {
	calls []model.Payload
	// delivered is returned from every Broadcast call.
	delivered int
}

func (f *fakeBroadcaster) Broadcast(_ string, p model.Payload) int {
	f.calls = append(f.calls, p)
	return f.delivered
}

type fakeAppender struct {
	events []model.Event
}

func (f *fakeAppender) Append(_ string, ev model.Event) {
	f.events = append(f.events, ev)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifyBroadcastsAndAppends(t *testing.T) {
	b := &fakeBroadcaster{delivered: 2}
	a := &fakeAppender{}
	g := NewGateway(b, a, testLogger())

	g.Notify("dev-001",
		model.Payload{Kind: model.KindMorning, Text: "Good morning!"},
		model.NewSystem("Morning ping sent"))

	if len(b.calls) != 1 || b.calls[0].Kind != model.KindMorning {
		t.Errorf("broadcast calls = %+v, want one morning payload", b.calls)
	}
	if len(a.events) != 1 || a.events[0].Type != model.EventSystem {
		t.Errorf("appended events = %+v, want one system entry", a.events)
	}
}

func TestNotifyAppendsEvenWithZeroDeliveries(t *testing.T) {
	b := &fakeBroadcaster{delivered: 0}
	a := &fakeAppender{}
	g := NewGateway(b, a, testLogger())

	g.Notify("offline-device",
		model.Payload{Kind: model.KindCheckin, Text: "ping"},
		model.NewSystem("Check-in ping sent"))

	// The log entry records intent, not confirmed delivery.
	if len(a.events) != 1 {
		t.Fatalf("appended %d events for offline device, want 1", len(a.events))
	}
	if a.events[0].Text != "Check-in ping sent" {
		t.Errorf("entry text = %q", a.events[0].Text)
	}
}
