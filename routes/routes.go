package routes

import (
	"github.com/gofiber/fiber/v2"

	"becayis-backend/controllers"
	"becayis-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.Tx())

	// Exchange requests
	protected.Post("/request", controllers.CreateRequest)
	protected.Get("/requests", controllers.GetRequests)
	protected.Get("/requests/active", controllers.GetActiveRequests)
	protected.Get("/request/:id", controllers.GetRequest)
	protected.Put("/request/:id", controllers.UpdateRequest)
	protected.Put("/request/:id/deactivate", controllers.DeactivateRequest)

	// Matching
	protected.Post("/request/:id/matches", controllers.FindMatches)
	protected.Get("/matches", controllers.GetMatches)
	protected.Put("/match/:id/status", controllers.TransitionMatch)

	// Notifications
	protected.Get("/notifications", controllers.GetNotifications)
	protected.Put("/notification/:id/read", controllers.MarkNotificationRead)
}
