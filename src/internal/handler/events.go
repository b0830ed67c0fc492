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

package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tracker-api/src/internal/utils"
	ws "tracker-api/src/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// EventsHandler upgrades dashboard clients onto the project event stream
type EventsHandler struct {
	manager  *ws.Manager
	upgrader websocket.Upgrader
}

// NewEventsHandler creates a new event stream handler
func NewEventsHandler(manager *ws.Manager) *EventsHandler {
	return &EventsHandler{
		manager: manager,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Dashboards authenticate with a bearer token; origin is not
				// the trust boundary here
				return true
			},
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// Connect handles GET /api/v1/events/connect. The authenticated dashboard
// is subscribed to its organization's event stream until the socket closes.
func (h *EventsHandler) Connect(c *gin.Context) {
	actor, orgID, ok := actorFromContext(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ERROR] WebSocket upgrade failed: orgID=%s error=%v", orgID, err)
		// Upgrade error is already sent by upgrader
		return
	}

	transport := ws.NewGorillaTransport(conn)
	connection, err := h.manager.Register(orgID, actor.UserID, transport)
	if err != nil {
		log.Printf("[WARN] Event stream registration failed: orgID=%s error=%v", orgID, err)
		errorMsg := utils.NewErrorResponse(429, "Too Many Requests", err.Error())
		if payload, marshalErr := json.Marshal(errorMsg); marshalErr == nil {
			conn.WriteMessage(websocket.TextMessage, payload)
		}
		conn.Close()
		return
	}

	// Acknowledge the subscription
	ack := map[string]string{
		"type":          "connection.ack",
		"connection_id": connection.ConnectionID,
		"timestamp":     time.Now().Format(time.RFC3339),
	}
	if payload, marshalErr := json.Marshal(ack); marshalErr == nil {
		if sendErr := connection.Transport.Send(payload); sendErr != nil {
			log.Printf("[ERROR] Failed to send connection ACK: connectionID=%s error=%v",
				connection.ConnectionID, sendErr)
		}
	}

	// Blocks until the dashboard disconnects
	h.readLoop(connection)

	h.manager.Unregister(orgID, connection.ConnectionID)
}

// readLoop reads from the socket until it closes. Dashboards do not send
// application messages; reading services control frames and surfaces
// disconnects.
func (h *EventsHandler) readLoop(conn *ws.Connection) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] Panic in event stream read loop: connectionID=%s panic=%v",
				conn.ConnectionID, r)
		}
	}()

	transport, ok := conn.Transport.(*ws.GorillaTransport)
	if !ok {
		log.Printf("[ERROR] Invalid transport type for connection: connectionID=%s", conn.ConnectionID)
		return
	}

	for {
		if conn.IsClosed() {
			return
		}
		if _, _, err := transport.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[WARN] Event stream closed unexpectedly: connectionID=%s error=%v",
					conn.ConnectionID, err)
			}
			return
		}
	}
}

// RegisterRoutes registers the event stream route
func (h *EventsHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/v1/events/connect", h.Connect)
}
