package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/smoraleda/crmcore/internal/auth"
	"github.com/smoraleda/crmcore/internal/handlers"
	"github.com/smoraleda/crmcore/internal/middleware"
	"github.com/smoraleda/crmcore/internal/models"
)

// RegisterRoutes registers all application routes under /api
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	userHandler *handlers.UserHandler,
	tokenManager *auth.TokenManager,
	resolver auth.PermissionResolver,
) {
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	router.Route("/api", func(r chi.Router) {
		// Public routes, throttled per IP
		r.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/register", authHandler.Register)
		r.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/login", authHandler.Login)

		// Protected routes, bearer token required
		r.Group(func(r chi.Router) {
			r.Use(auth.Guard(tokenManager))

			// Any authenticated caller
			r.Get("/auth/me", authHandler.Me)
			r.Get("/dashboard", dashboardHandler.Get)

			// Admin surface
			r.Group(func(r chi.Router) {
				r.Use(auth.RequirePermission(resolver, models.PermUsersManage))
				r.Get("/users", userHandler.ListUsers)
			})
		})
	})
}
