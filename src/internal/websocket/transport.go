/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package websocket

import (
	"sync"
	"time"

	gorilla "github.com/gorilla/websocket"
)

// Transport abstracts message delivery so the manager can be exercised in
// tests without real sockets
type Transport interface {
	Send(payload []byte) error
	SendPing() error
	EnablePongHandler(handler func(appData string) error)
	Close(code int, reason string) error
}

// GorillaTransport adapts a gorilla websocket connection to the Transport
// interface. Writes are serialized; gorilla connections allow only one
// concurrent writer.
type GorillaTransport struct {
	conn    *gorilla.Conn
	writeMu sync.Mutex
}

// NewGorillaTransport wraps an upgraded websocket connection
func NewGorillaTransport(conn *gorilla.Conn) *GorillaTransport {
	return &GorillaTransport{conn: conn}
}

// Send writes a text message to the peer
func (t *GorillaTransport) Send(payload []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return t.conn.WriteMessage(gorilla.TextMessage, payload)
}

// SendPing writes a ping control frame
func (t *GorillaTransport) SendPing() error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	return t.conn.WriteControl(gorilla.PingMessage, nil, time.Now().Add(5*time.Second))
}

// ReadMessage blocks until the peer sends a message or the connection
// drops. Dashboards are not expected to send application messages; reading
// services control frames and surfaces disconnects.
func (t *GorillaTransport) ReadMessage() (int, []byte, error) {
	return t.conn.ReadMessage()
}

// EnablePongHandler installs the pong callback used for heartbeat tracking
func (t *GorillaTransport) EnablePongHandler(handler func(appData string) error) {
	t.conn.SetPongHandler(handler)
}

// Close sends a close frame and tears down the underlying connection
func (t *GorillaTransport) Close(code int, reason string) error {
	t.writeMu.Lock()
	message := gorilla.FormatCloseMessage(code, reason)
	t.conn.WriteControl(gorilla.CloseMessage, message, time.Now().Add(5*time.Second))
	t.writeMu.Unlock()

	return t.conn.Close()
}
