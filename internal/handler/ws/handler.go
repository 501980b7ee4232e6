package ws

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/omprakash8639/Buddy/internal/service/ai"
	chatservice "github.com/omprakash8639/Buddy/internal/service/chat"
)

// Handler relays whole chat turns over a WebSocket connection. One inbound
// frame carries one user message; one outbound frame carries the buddy's
// reply. No token streaming.
type Handler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

// New creates the WebSocket chat handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes wires the WebSocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundFrame struct {
	Message string `json:"message"`
}

type outboundFrame struct {
	Type      string `json:"type"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
	SessionID string `json:"session_id"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	// Reject unknown sessions before upgrading so the client gets a 404
	// instead of an immediately closed socket.
	if _, err := h.chatSvc.Info(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error for session=%s: %v", sessionID, err)
			}
			return
		}

		if frame.Message == "" {
			h.writeFrame(conn, sessionID, outboundFrame{Type: "error", Error: "message is required"})
			continue
		}

		reply, err := h.chatSvc.Chat(r.Context(), sessionID, frame.Message)
		if err != nil {
			h.writeFrame(conn, sessionID, outboundFrame{Type: "error", Error: err.Error()})
			if errors.Is(err, chatservice.ErrSessionNotFound) {
				return
			}
			if !errors.Is(err, ai.ErrUpstreamUnavailable) && !errors.Is(err, ai.ErrMissingAPIKey) {
				return
			}
			continue
		}

		h.writeFrame(conn, sessionID, outboundFrame{Type: "reply", Response: reply})
	}
}

func (h *Handler) writeFrame(conn *websocket.Conn, sessionID string, frame outboundFrame) {
	frame.SessionID = sessionID
	frame.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[ws] write error for session=%s: %v", sessionID, err)
	}
}
