package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localvibe/localvibe-backend/internal/auth"
	"github.com/localvibe/localvibe-backend/internal/dto"
	"github.com/localvibe/localvibe-backend/internal/models"
	"github.com/localvibe/localvibe-backend/internal/services"
	"github.com/localvibe/localvibe-backend/internal/validation"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// viewerID returns the authenticated subject when one is present. Public
// read endpoints personalize the roster view for signed-in callers and fall
// back to the anonymous view otherwise.
func viewerID(c *fiber.Ctx) string {
	id, err := auth.UserID(c)
	if err != nil {
		return ""
	}
	return id
}

// ListEvents handles GET /api/events?category&limit - the general feed.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.events.ListEvents(services.ListOptions{
		Category: c.Query("category"),
		Limit:    c.QueryInt("limit", services.DefaultFeedLimit),
		ViewerID: viewerID(c),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch events",
		})
	}
	return c.JSON(dto.NewEventListResponse(events))
}

// GetEvent handles GET /api/events/:id.
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid event ID",
		})
	}

	event, err := h.events.GetEvent(uint(id), viewerID(c))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch event",
		})
	}
	return c.JSON(dto.NewEventResponse(event))
}

// CreateEvent handles POST /api/events - the caller becomes the organizer.
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateEventRequest
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

	event := &models.Event{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		Date:         req.Date,
		StartTime:    req.StartTime,
		Timezone:     req.Timezone,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Price:        req.Price,
		Capacity:     req.Capacity,
		Parking:      req.Parking,
		MeetingPoint: req.MeetingPoint,
		Duration:     req.Duration,
		Requirements: req.Requirements,
		OrganizerID:  userID,
	}

	created, err := h.events.CreateEvent(event)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create event",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewEventResponse(&services.EventWithRoster{Event: *created}))
}

// UpdateEvent handles PUT /api/events/:id - organizer only.
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
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

	var req dto.UpdateEventRequest
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

	updated, err := h.events.UpdateEvent(uint(id), userID, eventUpdates(&req))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found",
			})
		case errors.Is(err, services.ErrNotOrganizer):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Only the organizer can modify this event",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update event",
			})
		}
	}

	return c.JSON(dto.NewEventResponse(&services.EventWithRoster{Event: *updated}))
}

// DeleteEvent handles DELETE /api/events/:id - organizer only, soft
// deactivation.
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
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

	if err := h.events.DeactivateEvent(uint(id), userID); err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found",
			})
		case errors.Is(err, services.ErrNotOrganizer):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Only the organizer can delete this event",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to delete event",
			})
		}
	}

	return c.JSON(fiber.Map{"message": "Event deleted"})
}

// UserEvents handles GET /api/users/:id/events?type=organized|attending.
func (h *EventHandler) UserEvents(c *fiber.Ctx) error {
	userID := c.Params("id")
	viewer := viewerID(c)

	var (
		events []services.EventWithRoster
		err    error
	)
	switch c.Query("type", "organized") {
	case "organized":
		events, err = h.events.OrganizedEvents(userID, viewer)
	case "attending":
		events, err = h.events.AttendingEvents(userID, viewer)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "type must be organized or attending",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch events",
		})
	}
	return c.JSON(dto.NewEventListResponse(events))
}

// eventUpdates maps set request fields to their columns. Organizer and id
// are immutable.
func eventUpdates(req *dto.UpdateEventRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Subcategory != nil {
		updates["subcategory"] = *req.Subcategory
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Parking != nil {
		updates["parking"] = *req.Parking
	}
	if req.MeetingPoint != nil {
		updates["meeting_point"] = *req.MeetingPoint
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}
	return updates
}
