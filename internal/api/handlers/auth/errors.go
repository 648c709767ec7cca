package auth

import (
	"errors"
	"log"
	"net/http"

	"Brnd/internal/api/handlers"
	"Brnd/internal/core/users"
	"Brnd/internal/gateway"
)

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var ve *users.ValidationError
	switch {
	case errors.As(err, &ve):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", ve.Message)
	case errors.Is(err, users.ErrUserNotFound):
		handlers.WriteError(w, http.StatusNotFound, "UserNotFound", "User not found")
	case errors.Is(err, users.ErrNotAuthenticated), gateway.IsAuthError(err):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
	case errors.Is(err, gateway.ErrRateLimited):
		handlers.WriteError(w, http.StatusTooManyRequests, "RateLimited", "Too many requests")
	default:
		log.Printf("Auth service error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Something went wrong")
	}
}
