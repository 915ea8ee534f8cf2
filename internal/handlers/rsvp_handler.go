package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localvibe/localvibe-backend/internal/auth"
	"github.com/localvibe/localvibe-backend/internal/dto"
	"github.com/localvibe/localvibe-backend/internal/services"
	"github.com/localvibe/localvibe-backend/internal/validation"
)

type RsvpHandler struct {
	rsvps *services.RsvpService
}

func NewRsvpHandler(rsvps *services.RsvpService) *RsvpHandler {
	return &RsvpHandler{rsvps: rsvps}
}

// Rsvp handles POST /api/events/:id/rsvp - idempotent status upsert.
func (h *RsvpHandler) Rsvp(c *fiber.Ctx) error {
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

	var req dto.RsvpRequest
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

	rsvp, err := h.rsvps.Rsvp(uint(id), userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRsvpStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid RSVP status",
			})
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to save RSVP",
			})
		}
	}

	return c.JSON(dto.RsvpResponse{
		EventID:   rsvp.EventID,
		UserID:    rsvp.UserID,
		Status:    rsvp.Status,
		CreatedAt: rsvp.CreatedAt,
		UpdatedAt: rsvp.UpdatedAt,
	})
}

// RemoveRsvp handles DELETE /api/events/:id/rsvp. Removing an RSVP that does
// not exist succeeds; clients issue deletes speculatively.
func (h *RsvpHandler) RemoveRsvp(c *fiber.Ctx) error {
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

	if err := h.rsvps.RemoveRsvp(uint(id), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to remove RSVP",
		})
	}

	return c.JSON(fiber.Map{"message": "RSVP removed"})
}
