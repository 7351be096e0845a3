package websocket

import (
	"context"
	"strings"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/service/chat"
)

// Wire frames for the streaming chat protocol. The widget renders chunk
// frames as they arrive and replaces the whole message with the final frame's
// text, which is the post-processed authoritative version.
type inboundFrame struct {
	SessionID string               `json:"session_id"`
	Message   string               `json:"message"`
	History   []domain.ChatMessage `json:"history"`
}

type outboundFrame struct {
	Type     string               `json:"type"` // "chunk", "final", "error"
	Content  string               `json:"content,omitempty"`
	Response *domain.ChatResponse `json:"response,omitempty"`
}

// StreamHandler serves one chat session over a websocket connection.
type StreamHandler struct {
	service *chat.Service
	log     *zap.Logger
}

func NewStreamHandler(service *chat.Service, log *zap.Logger) *StreamHandler {
	return &StreamHandler{
		service: service,
		log:     log,
	}
}

// Handle runs the read loop for one connection. Each inbound frame is a full
// turn; chunks stream back as the model produces them.
func (h *StreamHandler) Handle(conn *websocket.Conn) {
	defer conn.Close()

	for {
		var in inboundFrame
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		in.Message = strings.TrimSpace(in.Message)
		if in.Message == "" {
			h.send(conn, outboundFrame{Type: "error", Content: "message is required"})
			continue
		}
		if in.SessionID == "" {
			in.SessionID = uuid.NewString()
		}

		resp := h.service.RespondStream(context.Background(), in.SessionID, in.Message, in.History, func(chunk string) {
			h.send(conn, outboundFrame{Type: "chunk", Content: chunk})
		})

		h.send(conn, outboundFrame{Type: "final", Response: &resp})
	}
}

func (h *StreamHandler) send(conn *websocket.Conn, frame outboundFrame) {
	if err := conn.WriteJSON(frame); err != nil {
		h.log.Warn("websocket write failed", zap.Error(err))
	}
}
