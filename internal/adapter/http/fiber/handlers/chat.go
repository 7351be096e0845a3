package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/observability/telemetry"
	"github.com/haven-wellness/concierge/internal/service/chat"
)

const maxMessageLen = 2000

type ChatHandler struct {
	service *chat.Service
	log     *zap.Logger
}

func NewChatHandler(service *chat.Service, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log,
	}
}

type ChatRequest struct {
	SessionID string               `json:"session_id"`
	Message   string               `json:"message"`
	History   []domain.ChatMessage `json:"history"`
}

func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}
	if len(req.Message) > maxMessageLen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message too long"})
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	timer := telemetry.StartResponseTimer()
	resp := h.service.Respond(c.Context(), req.SessionID, req.Message, req.History)
	timer.Observe(string(resp.Intent))

	telemetry.RecordIntent(string(resp.Intent))
	for _, flag := range resp.Flags {
		telemetry.RecordGuardrail(flag)
	}

	return c.JSON(fiber.Map{
		"session_id": req.SessionID,
		"response":   resp,
	})
}
