package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localvibe/localvibe-backend/internal/auth"
	"github.com/localvibe/localvibe-backend/internal/dto"
	"github.com/localvibe/localvibe-backend/internal/realtime"
	"github.com/localvibe/localvibe-backend/internal/services"
	"github.com/localvibe/localvibe-backend/internal/validation"
)

type ChatHandler struct {
	chats *services.ChatService
	relay *realtime.Relay
}

func NewChatHandler(chats *services.ChatService, relay *realtime.Relay) *ChatHandler {
	return &ChatHandler{chats: chats, relay: relay}
}

// History handles GET /api/events/:id/messages?limit.
func (h *ChatHandler) History(c *fiber.Ctx) error {
	if _, err := auth.UserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID",
		})
	}

	messages, err := h.chats.History(uint(id), c.QueryInt("limit", services.DefaultHistoryLimit))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load messages",
		})
	}

	out := make([]dto.ChatMessageResponse, len(messages))
	for i := range messages {
		out[i] = dto.NewChatMessageResponse(&messages[i])
	}
	return c.JSON(dto.ChatHistoryResponse{Messages: out})
}

// PostMessage handles POST /api/events/:id/messages - persist first, then
// fan out through the relay.
func (h *ChatHandler) PostMessage(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID",
		})
	}

	var req dto.PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Message: "Validation failed", Fields: fields,
		})
	}

	msg, err := h.chats.CreateMessage(uint(id), userID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send message",
		})
	}

	h.relay.Publish(msg)

	return c.Status(fiber.StatusCreated).JSON(dto.NewChatMessageResponse(msg))
}

// UnreadCounts handles GET /api/notifications/unread - the authoritative
// pull behind the relay's advisory unreadUpdate pushes.
func (h *ChatHandler) UnreadCounts(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	counts, err := h.chats.UnreadCounts(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load unread counts",
		})
	}

	out := make([]dto.UnreadCount, len(counts))
	for i, u := range counts {
		out[i] = dto.UnreadCount{EventID: u.EventID, Count: u.Count}
	}
	return c.JSON(dto.UnreadCountsResponse{Counts: out})
}

// MarkRead handles POST /api/notifications/read - the REST twin of the
// websocket ackRead.
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if fields := validation.Struct(&req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Message: "Validation failed", Fields: fields,
		})
	}

	if err := h.chats.MarkRead(req.EventID, userID, time.Now()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to mark read",
		})
	}

	return c.JSON(fiber.Map{"message": "Marked read"})
}
