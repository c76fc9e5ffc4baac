// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// PayloadKind enumerates the closed set of push frame kinds.
type PayloadKind string

// Push frame kinds sent to devices over the subscribe socket.
const (
	KindHello   PayloadKind = "hello"
	KindReply   PayloadKind = "reply"
	KindVision  PayloadKind = "vision"
	KindMorning PayloadKind = "morning"
	KindCheckin PayloadKind = "checkin"
)

// Payload is the wire shape of every push frame: a kind tag and a
// human-readable text line.
type Payload struct {
	Kind PayloadKind `json:"kind"`
	Text string      `json:"text"`
}

// Valid reports whether the kind is one of the known payload kinds.
func (k PayloadKind) Valid() bool {
	switch k {
	case KindHello, KindReply, KindVision, KindMorning, KindCheckin:
		return true
	}
	return false
}
