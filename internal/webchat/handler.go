package webchat

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/eliteproperties/realty-platform/internal/assistant"
	"github.com/eliteproperties/realty-platform/pkg/logging"
)

// Handler bridges the chat widget to the assistant: a WebSocket endpoint for
// real-time use and plain HTTP endpoints as a fallback.
type Handler struct {
	chat   assistant.Service
	logger *logging.Logger
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type      string `json:"type"` // "message", "reset", "ping"
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string           `json:"type"` // "session", "typing", "message", "reset", "pong", "error"
	SessionID string           `json:"sessionId,omitempty"`
	Text      string           `json:"text,omitempty"`
	Reply     *assistant.Reply `json:"reply,omitempty"`
}

// NewHandler creates a web chat handler.
func NewHandler(chat assistant.Service, logger *logging.Logger) *Handler {
	if chat == nil {
		panic("webchat: chat service cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{chat: chat, logger: logger}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades to WebSocket and handles real-time messaging.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sessionID})
	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}
		if msg.SessionID != "" {
			sessionID = msg.SessionID
		}

		switch msg.Type {
		case "ping":
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})

		case "reset":
			if err := h.chat.ResetSession(r.Context(), assistant.ResetRequest{SessionID: sessionID}); err != nil {
				h.logger.Error("webchat: failed to reset session", "error", err, "session_id", sessionID)
				_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: "Sorry, something went wrong. Please try again."})
				continue
			}
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "reset", SessionID: sessionID})

		case "message":
			if strings.TrimSpace(msg.Text) == "" {
				continue
			}
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})

			resp, err := h.chat.ProcessMessage(r.Context(), assistant.MessageRequest{
				SessionID: sessionID,
				Message:   msg.Text,
			})
			if err != nil {
				h.logger.Error("webchat: failed to process message", "error", err, "session_id", sessionID)
				_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: "Sorry, something went wrong. Please try again."})
				continue
			}
			_ = websocket.JSON.Send(conn, OutboundMessage{
				Type:      "message",
				SessionID: resp.SessionID,
				Reply:     &resp.Reply,
			})
		}
	}
}

// HandleMessage is the HTTP fallback for sending messages.
// POST /api/chat {"sessionId": "...", "message": "..."}
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req assistant.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	resp, err := h.chat.ProcessMessage(r.Context(), req)
	if err != nil {
		h.logger.Error("webchat: failed to process message", "error", err)
		http.Error(w, "failed to process message", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleQuickActions returns the suggestion chips the widget renders before
// the first message.
// GET /api/chat/actions
func (h *Handler) HandleQuickActions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]assistant.QuickAction{
		"quickActions": assistant.DefaultQuickActions(),
	})
}

// HandleReset clears a session's conversation state.
// POST /api/chat/reset {"sessionId": "..."}
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req assistant.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	if err := h.chat.ResetSession(r.Context(), req); err != nil {
		h.logger.Error("webchat: failed to reset session", "error", err, "session_id", req.SessionID)
		http.Error(w, "failed to reset session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "reset", "sessionId": req.SessionID})
}
