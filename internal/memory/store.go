// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package memory implements the in-process per-device event log and
// checklist store. All state lives for the process lifetime only.
package memory

import (
	"sync"

	"github.com/olegiv/companion-go/internal/model"
)

// defaultChecklist is the checklist returned for devices that never set
// one. It is a value, never materialized into the store, so a future
// change to the default applies to every device that has not customized.
var defaultChecklist = []string{"Drink water", "2-min stretch", "Get sunlight"}

// Store holds every device's event log and checklist. Logs are created
// lazily on first append and never destroyed while the process runs.
type Store struct {
	mu         sync.RWMutex
	logs       map[string][]model.Event
	checklists map[string][]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		logs:       make(map[string][]model.Event),
		checklists: make(map[string][]string),
	}
}

// Append adds an event to the device's log, creating the log if absent.
// Events are immutable once appended; insertion order is preserved.
func (s *Store) Append(deviceID string, ev model.Event) {
	s.mu.Lock()
	s.logs[deviceID] = append(s.logs[deviceID], ev)
	s.mu.Unlock()
}

// List returns a point-in-time snapshot of the device's event log, or an
// empty slice for unknown devices. The snapshot does not reflect appends
// made after the call returns.
func (s *Store) List(deviceID string) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.logs[deviceID]
	out := make([]model.Event, len(log))
	copy(out, log)
	return out
}

// SetChecklist replaces the device's checklist. The items slice is copied
// so later mutation by the caller cannot change stored state. An empty
// list is a valid checklist and shadows the default.
func (s *Store) SetChecklist(deviceID string, items []string) {
	stored := make([]string, len(items))
	copy(stored, items)

	s.mu.Lock()
	s.checklists[deviceID] = stored
	s.mu.Unlock()
}

// GetChecklist returns the device's checklist, or the built-in default if
// the device never set one. The returned slice is always a copy; reading
// never creates stored state.
func (s *Store) GetChecklist(deviceID string) []string {
	s.mu.RLock()
	stored, ok := s.checklists[deviceID]
	s.mu.RUnlock()

	src := defaultChecklist
	if ok {
		src = stored
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Len returns the number of events in the device's log. Zero for unknown
// devices.
func (s *Store) Len(deviceID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs[deviceID])
}
