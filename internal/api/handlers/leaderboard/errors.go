package leaderboard

import (
	"errors"
	"log"
	"net/http"

	"Brnd/internal/api/handlers"
	"Brnd/internal/core/leaderboard"
	"Brnd/internal/gateway"
)

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var ve *leaderboard.ValidationError
	switch {
	case errors.As(err, &ve):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", ve.Message)
	case gateway.IsAuthError(err):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
	case errors.Is(err, gateway.ErrRateLimited):
		handlers.WriteError(w, http.StatusTooManyRequests, "RateLimited", "Too many requests")
	default:
		log.Printf("Leaderboard service error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to load leaderboard")
	}
}
