package handlers

import (
	"encoding/json"
	"net/http"

	"panic-alert-backend/internal/models"
	"panic-alert-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins, same policy as the REST CORS layer
	},
}

// WebSocketHandler drives the lifecycle of each client connection: it
// comes up unauthenticated, becomes addressable by the notifier once an
// authenticate frame carries a valid token, and is deregistered on
// disconnect.
type WebSocketHandler struct {
	hub         *services.WSHub
	userService *services.UserService
	notifier    *services.Notifier
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WSHub, userService *services.UserService, notifier *services.Notifier) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		userService: userService,
		notifier:    notifier,
	}
}

// HandleWebSocket handles GET /ws
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	// All writes to this connection, hub pushes and error replies alike,
	// go through the wrapper's write lock.
	conn := services.NewWSConn(raw)
	defer conn.Close()

	log.Info().Str("remote_addr", r.RemoteAddr).Msg("WebSocket connection established")

	// Nil until an authenticate frame succeeds. The identity is trusted
	// for the rest of the connection, no per-event re-validation.
	var identity *models.Identity
	defer func() {
		if identity != nil {
			h.hub.Unregister(identity.UserID, conn)
		}
	}()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Msg("WebSocket error")
			}
			break
		}

		var msg services.WSMessage
		if err := json.Unmarshal(frame, &msg); err != nil {
			log.Error().Err(err).Msg("Failed to parse WebSocket message")
			h.sendError(conn, "Invalid message format")
			continue
		}

		switch msg.Type {
		case "authenticate":
			id, err := h.userService.VerifyToken(msg.Token)
			if err != nil {
				// Fails closed: an invalid token kills the connection.
				log.Warn().Err(err).Msg("WebSocket authentication failed")
				return
			}
			if identity != nil && identity.UserID != id.UserID {
				h.hub.Unregister(identity.UserID, conn)
			}
			identity = &id
			h.hub.Register(id.UserID, conn)
			log.Info().
				Str("user_id", id.UserID).
				Str("name", id.Name).
				Msg("User authenticated via WebSocket")

		case "button_click":
			if identity == nil {
				log.Warn().Msg("Unauthorized panic button click dropped")
				continue
			}
			if _, err := h.notifier.PanicAlert(r.Context(), *identity, msg.Location, msg.Coordinates); err != nil {
				log.Error().
					Err(err).
					Str("user_id", identity.UserID).
					Msg("Failed to handle panic button click")
			}

		default:
			log.Warn().Str("type", msg.Type).Msg("Unknown WebSocket message type")
			h.sendError(conn, "Unknown message type")
		}
	}
}

// sendError sends an error message to the WebSocket connection
func (h *WebSocketHandler) sendError(conn *services.WSConn, message string) {
	err := conn.Send(services.WSMessage{
		Type:    "error",
		Message: message,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send error message")
	}
}
