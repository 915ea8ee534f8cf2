package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/localvibe/localvibe-backend/internal/config"
	"github.com/localvibe/localvibe-backend/internal/handlers"
	"github.com/localvibe/localvibe-backend/internal/middleware"
	"github.com/localvibe/localvibe-backend/internal/realtime"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	eventHandler *handlers.EventHandler,
	rsvpHandler *handlers.RsvpHandler,
	chatHandler *handlers.ChatHandler,
	relay *realtime.Relay,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public reads, personalized when a valid token is present
	api.Get("/events", middleware.JWTOptional(cfg), eventHandler.ListEvents)
	api.Get("/events/:id", middleware.JWTOptional(cfg), eventHandler.GetEvent)
	api.Get("/users/:id/events", middleware.JWTOptional(cfg), eventHandler.UserEvents)
	api.Get("/users/:id", userHandler.GetUser)

	// Authenticated identity and profile
	api.Get("/auth/user", middleware.JWTProtected(cfg), userHandler.GetAuthUser)
	api.Put("/users/profile", middleware.JWTProtected(cfg), userHandler.UpdateProfile)

	// Event mutations (organizer checks happen in the service)
	api.Post("/events", middleware.JWTProtected(cfg), eventHandler.CreateEvent)
	api.Put("/events/:id", middleware.JWTProtected(cfg), eventHandler.UpdateEvent)
	api.Delete("/events/:id", middleware.JWTProtected(cfg), eventHandler.DeleteEvent)

	// RSVPs
	api.Post("/events/:id/rsvp", middleware.JWTProtected(cfg), rsvpHandler.Rsvp)
	api.Delete("/events/:id/rsvp", middleware.JWTProtected(cfg), rsvpHandler.RemoveRsvp)

	// Event chat
	api.Get("/events/:id/messages", middleware.JWTProtected(cfg), chatHandler.History)
	api.Post("/events/:id/messages", middleware.JWTProtected(cfg), chatHandler.PostMessage)

	// Unread notification state (authoritative pull; the relay only pushes
	// advisory deltas)
	api.Get("/notifications/unread", middleware.JWTProtected(cfg), chatHandler.UnreadCounts)
	api.Post("/notifications/read", middleware.JWTProtected(cfg), chatHandler.MarkRead)

	// Realtime relay
	app.Get("/ws", realtime.Upgrade, realtime.Handler(relay))
}
