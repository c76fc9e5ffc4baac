// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package hub

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/olegiv/companion-go/internal/model"
)

// ErrConnClosed is returned by Send after the connection has been closed.
var ErrConnClosed = errors.New("hub: connection closed")

// defaultWriteWait bounds how long a single push write may block, so one
// stalled device client cannot hold up a broadcast indefinitely.
const defaultWriteWait = 10 * time.Second

// Conn is one live push channel to a device client. A Conn belongs to
// exactly one device for its lifetime and transitions open to closed
// exactly once.
type Conn struct {
	id        string
	deviceID  string
	ws        *websocket.Conn
	writeWait time.Duration

	mu     sync.Mutex // serializes writes; gorilla allows one writer at a time
	closed bool
}

// NewConn wraps an upgraded websocket connection for the given device.
func NewConn(deviceID string, ws *websocket.Conn) *Conn {
	return NewConnWithTimeout(deviceID, ws, defaultWriteWait)
}

// NewConnWithTimeout wraps a connection with a custom per-write deadline.
func NewConnWithTimeout(deviceID string, ws *websocket.Conn, writeWait time.Duration) *Conn {
	if writeWait <= 0 {
		writeWait = defaultWriteWait
	}
	return &Conn{
		id:        uuid.NewString(),
		deviceID:  deviceID,
		ws:        ws,
		writeWait: writeWait,
	}
}

// ID returns the connection's unique identifier, used for log correlation.
func (c *Conn) ID() string { return c.id }

// DeviceID returns the device this connection was opened for.
func (c *Conn) DeviceID() string { return c.deviceID }

// Send writes one payload frame to the client. Safe for concurrent use.
func (c *Conn) Send(p model.Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(p)
}

// Close closes the underlying websocket. Idempotent: the second and later
// calls are no-ops.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.ws.Close()
}

// CloseWithCode sends a close control frame with the given code and reason
// before closing the socket. Used to reject unauthorized subscriptions.
func (c *Conn) CloseWithCode(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	deadline := time.Now().Add(c.writeWait)
	msg := websocket.FormatCloseMessage(code, reason)
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, deadline)
	return c.ws.Close()
}
