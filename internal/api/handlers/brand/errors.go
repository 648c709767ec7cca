package brand

import (
	"errors"
	"log"
	"net/http"

	"Brnd/internal/api/handlers"
	"Brnd/internal/core/brands"
	"Brnd/internal/gateway"
)

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var ve *brands.ValidationError
	switch {
	case errors.As(err, &ve):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", ve.Message)
	case errors.Is(err, gateway.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Not found")
	case errors.Is(err, gateway.ErrRateLimited):
		handlers.WriteError(w, http.StatusTooManyRequests, "RateLimited", "Too many requests")
	default:
		log.Printf("Brand service error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to load brands")
	}
}
