package websocket

import (
	"sync"
	"time"
)

// Connection is one dashboard client subscribed to the event stream of its
// organization
type Connection struct {
	ConnectionID   string
	OrganizationID string
	UserID         string
	Transport      Transport

	mu            sync.Mutex
	lastHeartbeat time.Time
	closed        bool
}

// NewConnection creates a connection record for a registered dashboard client
func NewConnection(connectionID, orgID, userID string, transport Transport) *Connection {
	return &Connection{
		ConnectionID:   connectionID,
		OrganizationID: orgID,
		UserID:         userID,
		Transport:      transport,
		lastHeartbeat:  time.Now(),
	}
}

// UpdateHeartbeat records that the peer answered a ping
func (c *Connection) UpdateHeartbeat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastHeartbeat = time.Now()
}

// LastHeartbeat returns the time of the most recent pong
func (c *Connection) LastHeartbeat() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastHeartbeat
}

// IsClosed reports whether Close has been called
func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close tears down the transport once; later calls are no-ops
func (c *Connection) Close(code int, reason string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.Transport.Close(code, reason)
}
