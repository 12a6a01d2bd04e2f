package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avinashingale116-sys/mydeal/internal/api/http/handlers"
	"github.com/avinashingale116-sys/mydeal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Sessions       *handlers.SessionHandler
	Requirements   *handlers.RequirementsHandler
	Notifications  *handlers.NotificationsHandler
	Assist         *handlers.AssistHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/session", cfg.Sessions.Create)
	app.Get("/auth/vendors", cfg.Sessions.Vendors)

	// Listings are open to anonymous browsers; a bearer token switches the
	// viewer to buyer or seller visibility.
	app.Get("/requirements", cfg.AuthMiddleware.HandleOptional, cfg.Requirements.List)
	app.Get("/requirements/:id", cfg.AuthMiddleware.HandleOptional, cfg.Requirements.Get)

	buyers := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireBuyer())
	buyers.Post("/requirements", cfg.Requirements.Create)
	buyers.Post("/requirements/:id/select", cfg.Requirements.SelectBid)
	buyers.Post("/requirements/:id/confirm", cfg.Requirements.ConfirmPayment)

	sellers := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireSeller())
	sellers.Post("/requirements/:id/bids", cfg.Requirements.PlaceBid)
	sellers.Post("/advisor/suggestions", cfg.Assist.SuggestBid)

	app.Post("/resolver/specifications", cfg.AuthMiddleware.Handle, cfg.Assist.ResolveSpecification)

	notifications := app.Group("/notifications", cfg.AuthMiddleware.Handle)
	notifications.Get("", cfg.Notifications.List)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)
	notifications.Delete("", cfg.Notifications.ClearAll)
}
