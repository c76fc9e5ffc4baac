// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/olegiv/companion-go/internal/model"
)

func TestAppendAndList(t *testing.T) {
	s := NewStore()

	s.Append("dev-001", model.NewUserText("hello"))
	s.Append("dev-001", model.NewSystem("Morning ping sent"))
	s.Append("dev-002", model.NewUserText("other device"))

	events := s.List("dev-001")
	if len(events) != 2 {
		t.Fatalf("List returned %d events, want 2", len(events))
	}
	if events[0].Type != model.EventUserText || events[0].Text != "hello" {
		t.Errorf("first event = %+v, want user_text %q", events[0], "hello")
	}
	if events[1].Type != model.EventSystem {
		t.Errorf("second event type = %q, want %q", events[1].Type, model.EventSystem)
	}

	if got := s.List("dev-002"); len(got) != 1 {
		t.Errorf("dev-002 log has %d events, want 1", len(got))
	}
}

func TestListUnknownDeviceIsEmpty(t *testing.T) {
	s := NewStore()

	events := s.List("never-seen")
	if events == nil {
		t.Fatal("List returned nil, want empty slice")
	}
	if len(events) != 0 {
		t.Fatalf("List returned %d events, want 0", len(events))
	}
}

func TestListIsSnapshot(t *testing.T) {
	s := NewStore()
	s.Append("dev-001", model.NewUserText("one"))

	snapshot := s.List("dev-001")
	s.Append("dev-001", model.NewUserText("two"))

	if len(snapshot) != 1 {
		t.Fatalf("snapshot grew to %d events after later append", len(snapshot))
	}

	// Mutating the snapshot must not reach stored state.
	snapshot[0].Text = "tampered"
	if got := s.List("dev-001")[0].Text; got != "one" {
		t.Errorf("stored event text = %q after snapshot mutation, want %q", got, "one")
	}
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	s := NewStore()

	const goroutines = 8
	const perGoroutine = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				s.Append("dev-001", model.NewUserText(fmt.Sprintf("g%d-%d", g, i)))
			}
		}(g)
	}
	wg.Wait()

	if got := s.Len("dev-001"); got != goroutines*perGoroutine {
		t.Fatalf("log has %d events, want %d", got, goroutines*perGoroutine)
	}
}

func TestGetChecklistDefault(t *testing.T) {
	s := NewStore()

	got := s.GetChecklist("dev-001")
	want := []string{"Drink water", "2-min stretch", "Get sunlight"}
	if len(got) != len(want) {
		t.Fatalf("default checklist has %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("default checklist[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Reading the default must not materialize stored state, and the
	// returned slice must be caller-owned.
	got[0] = "tampered"
	again := s.GetChecklist("dev-001")
	if again[0] != "Drink water" {
		t.Errorf("default checklist was mutated through a returned copy: %q", again[0])
	}
}

func TestSetChecklistReplacesWholesale(t *testing.T) {
	s := NewStore()

	s.SetChecklist("dev-002", []string{"Stretch"})
	if got := s.GetChecklist("dev-002"); len(got) != 1 || got[0] != "Stretch" {
		t.Fatalf("checklist = %v, want [Stretch]", got)
	}

	// Other devices keep the default.
	if got := s.GetChecklist("dev-001"); len(got) != 3 {
		t.Errorf("unrelated device checklist has %d items, want default 3", len(got))
	}

	// Empty list is valid and shadows the default.
	s.SetChecklist("dev-002", []string{})
	if got := s.GetChecklist("dev-002"); len(got) != 0 {
		t.Errorf("checklist after empty set = %v, want empty", got)
	}
}

func TestSetChecklistCopiesInput(t *testing.T) {
	s := NewStore()

	items := []string{"Walk"}
	s.SetChecklist("dev-001", items)
	items[0] = "tampered"

	if got := s.GetChecklist("dev-001"); got[0] != "Walk" {
		t.Errorf("stored checklist = %v, caller mutation leaked in", got)
	}
}

func TestChecklistConcurrentReadsAndWrites(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.SetChecklist("dev-001", []string{"a", "b"})
			}
		}(g)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				got := s.GetChecklist("dev-001")
				// Either the default (3 items) or the fully-set value
				// (2 items); never a partial write.
				if len(got) != 2 && len(got) != 3 {
					t.Errorf("observed partial checklist: %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
