package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"panic-alert-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message in either direction
type WSMessage struct {
	Type             string                `json:"type"`
	Token            string                `json:"token,omitempty"`
	Location         string                `json:"location,omitempty"`
	Coordinates      *models.Coordinates   `json:"coordinates,omitempty"`
	Message          string                `json:"message,omitempty"`
	Timestamp        string                `json:"timestamp,omitempty"`
	UserID           string                `json:"userId,omitempty"`
	EmergencyContact *models.RescueContact `json:"emergencyContact,omitempty"`
}

// WSConn wraps a websocket connection with a write lock. The underlying
// connection allows only one concurrent writer, and a connection is
// written to from two sides: the hub fan-out running on other users'
// reader goroutines, and the connection's own reader goroutine answering
// bad frames. Every server-to-client write must go through Send.
type WSConn struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
}

// NewWSConn wraps an upgraded websocket connection
func NewWSConn(conn *websocket.Conn) *WSConn {
	return &WSConn{conn: conn}
}

// Send marshals and writes one message, serialized against all other
// writers of this connection
func (c *WSConn) Send(message WSMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// ReadMessage reads the next frame. Only the connection's reader
// goroutine may call this.
func (c *WSConn) ReadMessage() (int, []byte, error) {
	return c.conn.ReadMessage()
}

// Close closes the underlying connection
func (c *WSConn) Close() error {
	return c.conn.Close()
}

// WSHub is the connection registry: the process-wide mapping from
// authenticated user to live WebSocket connection. One instance is
// constructed at startup and shared by reference; it is the only mutable
// shared state in the relay.
//
// Each user holds at most one live connection: registering a new one
// closes and replaces the previous, so notification lookups are
// deterministic.
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*WSConn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*WSConn),
	}
}

// Register attaches an authenticated identity's connection to the hub
func (h *WSHub) Register(userID string, conn *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[userID]; ok && existing != conn {
		existing.Close()
	}

	h.connections[userID] = conn

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a connection from the hub. The conn argument guards
// against a stale reader loop removing the connection that replaced it.
func (h *WSHub) Unregister(userID string, conn *WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.connections[userID]; ok && current == conn {
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends a message to a specific user's live connection. The
// network write happens outside the hub lock; the connection's own write
// lock serializes it against other writers.
func (h *WSHub) SendToUser(userID string, message WSMessage) error {
	h.mu.RLock()
	conn, ok := h.connections[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %s is not connected", userID)
	}

	if err := conn.Send(message); err != nil {
		// The connection is broken; drop it so later lookups miss.
		h.Unregister(userID, conn)
		conn.Close()
		return err
	}

	return nil
}

// IsOnline checks if a user has a live connection
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[userID]
	return ok
}
