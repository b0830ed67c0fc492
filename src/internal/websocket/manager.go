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
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager handles the lifecycle of dashboard event-stream connections.
// It keeps an in-memory registry of active connections keyed by
// organization, monitors heartbeats, and fans project events out to every
// dashboard of an organization.
type Manager struct {
	// connections maps organizationID -> []*Connection
	connections sync.Map

	// mu protects connectionCount
	mu              sync.RWMutex
	connectionCount int

	maxConnections       int
	maxConnectionsPerOrg int
	heartbeatInterval    time.Duration
	heartbeatTimeout     time.Duration

	shutdownCtx context.Context
	shutdownFn  context.CancelFunc
	wg          sync.WaitGroup
}

// ManagerConfig contains configuration parameters for the connection manager
type ManagerConfig struct {
	MaxConnections       int           // Maximum concurrent connections (default 1000)
	MaxConnectionsPerOrg int           // Maximum connections per organization (default 10)
	HeartbeatInterval    time.Duration // Ping interval (default 20s)
	HeartbeatTimeout     time.Duration // Pong timeout (default 30s)
}

// DefaultManagerConfig returns sensible default configuration values
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		MaxConnections:       1000,
		MaxConnectionsPerOrg: 10,
		HeartbeatInterval:    20 * time.Second,
		HeartbeatTimeout:     30 * time.Second,
	}
}

// NewManager creates a new connection manager with the provided configuration
func NewManager(config ManagerConfig) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		maxConnections:       config.MaxConnections,
		maxConnectionsPerOrg: config.MaxConnectionsPerOrg,
		heartbeatInterval:    config.HeartbeatInterval,
		heartbeatTimeout:     config.HeartbeatTimeout,
		shutdownCtx:          ctx,
		shutdownFn:           cancel,
	}
}

// Register adds a dashboard connection for an organization and starts
// heartbeat monitoring. Fails when the global or per-organization
// connection limit is reached.
func (m *Manager) Register(orgID, userID string, transport Transport) (*Connection, error) {
	if count := m.countOrgConnections(orgID); count >= m.maxConnectionsPerOrg {
		return nil, fmt.Errorf("organization connection limit reached (%d)", m.maxConnectionsPerOrg)
	}

	m.mu.Lock()
	if m.connectionCount >= m.maxConnections {
		m.mu.Unlock()
		return nil, fmt.Errorf("maximum connection limit reached (%d)", m.maxConnections)
	}
	m.connectionCount++
	m.mu.Unlock()

	conn := NewConnection(uuid.New().String(), orgID, userID, transport)

	connsInterface, _ := m.connections.LoadOrStore(orgID, []*Connection{})
	conns := connsInterface.([]*Connection)
	conns = append(conns, conn)
	m.connections.Store(orgID, conns)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.monitorHeartbeat(conn)
	}()

	log.Printf("[INFO] Dashboard connected: orgID=%s userID=%s connectionID=%s totalConnections=%d",
		orgID, userID, conn.ConnectionID, m.ConnectionCount())

	return conn, nil
}

// Unregister removes a connection from the registry and closes it
// gracefully. Idempotent.
func (m *Manager) Unregister(orgID, connectionID string) {
	connsInterface, ok := m.connections.Load(orgID)
	if !ok {
		return
	}

	conns := connsInterface.([]*Connection)
	var kept []*Connection
	var removed *Connection

	for _, conn := range conns {
		if conn.ConnectionID == connectionID {
			removed = conn
		} else {
			kept = append(kept, conn)
		}
	}

	if removed == nil {
		return
	}

	if len(kept) == 0 {
		m.connections.Delete(orgID)
	} else {
		m.connections.Store(orgID, kept)
	}

	if err := removed.Close(1000, "normal closure"); err != nil {
		log.Printf("[ERROR] Failed to close connection: orgID=%s connectionID=%s error=%v",
			orgID, connectionID, err)
	}

	m.mu.Lock()
	m.connectionCount--
	m.mu.Unlock()

	log.Printf("[INFO] Dashboard disconnected: orgID=%s connectionID=%s totalConnections=%d",
		orgID, connectionID, m.ConnectionCount())
}

// Broadcast delivers a payload to every dashboard connection of an
// organization and returns the number of successful deliveries. Failed
// connections are unregistered.
func (m *Manager) Broadcast(orgID string, payload []byte) int {
	connsInterface, ok := m.connections.Load(orgID)
	if !ok {
		return 0
	}

	delivered := 0
	for _, conn := range connsInterface.([]*Connection) {
		if conn.IsClosed() {
			continue
		}
		if err := conn.Transport.Send(payload); err != nil {
			log.Printf("[WARN] Event delivery failed: orgID=%s connectionID=%s error=%v",
				orgID, conn.ConnectionID, err)
			m.Unregister(orgID, conn.ConnectionID)
			continue
		}
		delivered++
	}
	return delivered
}

// ConnectionCount returns the total number of active connections
func (m *Manager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connectionCount
}

func (m *Manager) countOrgConnections(orgID string) int {
	connsInterface, ok := m.connections.Load(orgID)
	if !ok {
		return 0
	}
	return len(connsInterface.([]*Connection))
}

// monitorHeartbeat periodically pings the peer and tears the connection
// down when no pong arrives within the timeout. Runs in a background
// goroutine per connection.
func (m *Manager) monitorHeartbeat(conn *Connection) {
	ticker := time.NewTicker(m.heartbeatInterval)
	defer ticker.Stop()

	conn.Transport.EnablePongHandler(func(appData string) error {
		conn.UpdateHeartbeat()
		return nil
	})

	for {
		select {
		case <-m.shutdownCtx.Done():
			return

		case <-ticker.C:
			if conn.IsClosed() {
				return
			}

			if time.Since(conn.LastHeartbeat()) > m.heartbeatTimeout {
				log.Printf("[WARN] Heartbeat timeout: orgID=%s connectionID=%s lastHeartbeat=%v",
					conn.OrganizationID, conn.ConnectionID, conn.LastHeartbeat())
				m.Unregister(conn.OrganizationID, conn.ConnectionID)
				return
			}

			if err := conn.Transport.SendPing(); err != nil {
				log.Printf("[ERROR] Failed to send ping: orgID=%s connectionID=%s error=%v",
					conn.OrganizationID, conn.ConnectionID, err)
				m.Unregister(conn.OrganizationID, conn.ConnectionID)
				return
			}
		}
	}
}

// Shutdown gracefully closes all connections and waits for the heartbeat
// goroutines to exit. Called during server shutdown.
func (m *Manager) Shutdown() {
	log.Println("[INFO] Shutting down event stream manager...")

	m.shutdownFn()

	m.connections.Range(func(key, value interface{}) bool {
		orgID := key.(string)
		for _, conn := range value.([]*Connection) {
			if err := conn.Close(1000, "server shutdown"); err != nil {
				log.Printf("[ERROR] Failed to close connection during shutdown: orgID=%s connectionID=%s error=%v",
					orgID, conn.ConnectionID, err)
			}
		}
		return true
	})

	m.wg.Wait()

	log.Println("[INFO] Event stream manager shutdown complete")
}
