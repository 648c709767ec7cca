package routes

import (
	authhandlers "Brnd/internal/api/handlers/auth"
	"Brnd/internal/api/middleware"
	"Brnd/internal/core/auth"
	"Brnd/internal/core/users"
	"Brnd/internal/core/voting"

	"github.com/go-chi/chi/v5"
)

// RegisterAuthRoutes registers the session endpoints on the router
func RegisterAuthRoutes(r chi.Router, userService users.Service, verifier auth.QuickAuthVerifier, sessions *auth.SessionService, flows *voting.Manager, authMiddleware *middleware.SessionAuthMiddleware) {
	loginHandler := authhandlers.NewLoginHandler(userService, verifier, sessions)
	meHandler := authhandlers.NewMeHandler(userService)
	logoutHandler := authhandlers.NewLogoutHandler(userService, sessions, flows)

	// Login is the only unauthenticated auth endpoint
	r.Post("/api/auth/login", loginHandler.HandleLogin)

	r.With(authMiddleware.RequireAuth).Get("/api/auth/me", meHandler.HandleMe)
	r.With(authMiddleware.RequireAuth).Post("/api/auth/logout", logoutHandler.HandleLogout)
}
