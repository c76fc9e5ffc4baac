// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the event log entries and push payload types
// shared across the companion backend.
package model

import "time"

// EventType discriminates the variants of an event log entry.
type EventType string

// Event types recorded in a device's memory log.
const (
	EventUserText EventType = "user_text"
	EventVision   EventType = "vision"
	EventImage    EventType = "image"
	EventSystem   EventType = "system"
)

// Event is one immutable entry in a device's memory log. Only the fields
// relevant to the event's type are populated; the rest are omitted from
// the JSON encoding.
type Event struct {
	Type    EventType `json:"type"`
	Text    string    `json:"text,omitempty"`
	Summary string    `json:"summary,omitempty"`
	Size    int64     `json:"size,omitempty"`
	Prompt  string    `json:"prompt,omitempty"`
	Width   int       `json:"width,omitempty"`
	Height  int       `json:"height,omitempty"`
	TS      int64     `json:"ts"`
}

// now returns the wall-clock timestamp in unix milliseconds. Event order
// within a log is insertion order; timestamps are best-effort only.
func now() int64 {
	return time.Now().UnixMilli()
}

// NewUserText builds a user_text event for an inbound device message.
func NewUserText(text string) Event {
	return Event{Type: EventUserText, Text: text, TS: now()}
}

// NewVision builds a vision event with an optional summary.
func NewVision(summary string) Event {
	return Event{Type: EventVision, Summary: summary, TS: now()}
}

// NewImage builds an image event recording the upload size, the optional
// prompt, and the sniffed dimensions (zero when the image could not be
// decoded).
func NewImage(size int64, prompt string, width, height int) Event {
	return Event{Type: EventImage, Size: size, Prompt: prompt, Width: width, Height: height, TS: now()}
}

// NewSystem builds a system event, used for scheduler ping bookkeeping.
func NewSystem(text string) Event {
	return Event{Type: EventSystem, Text: text, TS: now()}
}
