package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bug-tracker/internal/api/http/handlers"
	"github.com/spec-kit/bug-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Bugs           *handlers.BugsHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	v1 := app.Group("/api/v1")
	v1.Post("/auth/login", cfg.Auth.Login)

	bugs := v1.Group("/bugs")
	bugs.Get("/", cfg.Bugs.ListBugs)
	bugs.Get("/:id", cfg.Bugs.GetBug)

	// Reads stay open; writes go through the optional auth gate.
	bugs.Post("/", cfg.AuthMiddleware.Handle, cfg.Bugs.CreateBug)
	bugs.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Bugs.UpdateBug)
	bugs.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Bugs.DeleteBug)
}
