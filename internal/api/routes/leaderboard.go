package routes

import (
	leaderboardhandlers "Brnd/internal/api/handlers/leaderboard"
	"Brnd/internal/api/middleware"
	"Brnd/internal/core/leaderboard"

	"github.com/go-chi/chi/v5"
)

// RegisterLeaderboardRoutes registers the leaderboard endpoint
func RegisterLeaderboardRoutes(r chi.Router, service leaderboard.Service, authMiddleware *middleware.SessionAuthMiddleware) {
	handler := leaderboardhandlers.NewGetLeaderboardHandler(service)

	// Optional auth: an anonymous caller gets the list without personal
	// ranking context
	r.With(authMiddleware.OptionalAuth).Get("/api/leaderboard", handler.HandleGetLeaderboard)
}
