package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localvibe/localvibe-backend/internal/auth"
	"github.com/localvibe/localvibe-backend/internal/dto"
	"github.com/localvibe/localvibe-backend/internal/services"
	"github.com/localvibe/localvibe-backend/internal/validation"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetAuthUser handles GET /api/auth/user - upserts the caller from identity
// claims on first sight and returns the profile.
func (h *UserHandler) GetAuthUser(c *fiber.Ctx) error {
	identity, err := auth.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.users.UpsertUser(services.UpsertUserInput{
		ID:        identity.Sub,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load user",
		})
	}

	return c.JSON(dto.NewUserResponse(user))
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateProfileRequest
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

	user, err := h.users.UpdateProfile(userID, services.ProfileUpdate{
		Location:    req.Location,
		Interests:   req.Interests,
		Personality: req.Personality,
		Signature:   req.Signature,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update profile",
		})
	}

	return c.JSON(dto.NewUserResponse(user))
}

// GetUser handles GET /api/users/:id - public profile.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load user",
		})
	}
	return c.JSON(dto.NewUserResponse(user))
}
