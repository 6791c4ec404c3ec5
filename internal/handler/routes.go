package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	analyticsHandler *AnalyticsHandler,
	healthHandler *HealthHandler,
	authMiddleware fiber.Handler,
	requireAdmin fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// API v1
	api := app.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", userHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authMiddleware, authHandler.Logout)
	auth.Get("/verify-email", userHandler.VerifyEmail)
	auth.Post("/verify-email", userHandler.VerifyEmail)

	// User routes (protected)
	users := api.Group("/users", authMiddleware)
	users.Get("/me", userHandler.GetMe)
	users.Post("/invite", userHandler.Invite)
	users.Get("/", requireAdmin, userHandler.List)
	users.Get("/:id", requireAdmin, userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", requireAdmin, userHandler.Delete)

	// Admin account management
	admin := api.Group("/admin", authMiddleware, requireAdmin)
	admin.Post("/users/:id/reset-password", userHandler.ResetPassword)
	admin.Post("/users/:id/unlock", userHandler.Unlock)

	// Analytics (admin only)
	analytics := api.Group("/analytics", authMiddleware, requireAdmin)
	analytics.Get("/retention", analyticsHandler.GetRetentionData)
}
