package routes

import (
	userhandlers "Brnd/internal/api/handlers/user"
	"Brnd/internal/api/middleware"
	"Brnd/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes registers vote history and user brand endpoints
func RegisterUserRoutes(r chi.Router, service users.Service, authMiddleware *middleware.SessionAuthMiddleware) {
	historyHandler := userhandlers.NewVoteHistoryHandler(service)
	brandsHandler := userhandlers.NewUserBrandsHandler(service)

	r.With(authMiddleware.RequireAuth).Get("/api/my-vote-history", historyHandler.HandleMyVoteHistory)
	r.With(authMiddleware.RequireAuth).Get("/api/user/brands", brandsHandler.HandleUserBrands)
	r.With(authMiddleware.RequireAuth).Get("/api/user/votes/{unixDate}", brandsHandler.HandleVotesForDay)

	// Public: anyone can look at a user's past podiums
	r.Get("/api/user/{fid}/vote-history", historyHandler.HandleUserVoteHistory)
}
