package routes

import (
	"time"

	votehandlers "Brnd/internal/api/handlers/vote"
	"Brnd/internal/api/middleware"
	"Brnd/internal/core/voting"

	"github.com/go-chi/chi/v5"
)

// RegisterVoteRoutes registers the vote flow endpoints on the router
// All of them require a session: the flow is keyed by fid
func RegisterVoteRoutes(r chi.Router, flows *voting.Manager, authMiddleware *middleware.SessionAuthMiddleware) {
	submitHandler := votehandlers.NewSubmitVoteHandler(flows)
	shareHandler := votehandlers.NewShareVoteHandler(flows)
	skipHandler := votehandlers.NewSkipVoteHandler(flows)
	flowHandler := votehandlers.NewGetFlowHandler(flows)

	// Mutations get a tighter per-user budget than the global limiter.
	// Mounted after RequireAuth so the fid keys the bucket.
	voteLimiter := middleware.NewRateLimiter(30, time.Minute)

	r.With(authMiddleware.RequireAuth, voteLimiter.Middleware).Post("/api/votes", submitHandler.HandleSubmitVote)
	r.With(authMiddleware.RequireAuth).Get("/api/votes/share", shareHandler.HandleSharePayload)
	r.With(authMiddleware.RequireAuth, voteLimiter.Middleware).Post("/api/votes/share", shareHandler.HandleShareVote)
	r.With(authMiddleware.RequireAuth, voteLimiter.Middleware).Post("/api/votes/skip", skipHandler.HandleSkipVote)
	r.With(authMiddleware.RequireAuth).Get("/api/votes/flow", flowHandler.HandleGetFlow)
}
