package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"Brnd/internal/api/handlers"
	"Brnd/internal/api/middleware"
	"Brnd/internal/core/users"
)

// MeHandler returns the authenticated user snapshot
type MeHandler struct {
	users users.Service
}

// NewMeHandler creates a new me handler
func NewMeHandler(users users.Service) *MeHandler {
	return &MeHandler{users: users}
}

// HandleMe returns the current user, served from the auth cache entry so
// hasVotedToday reflects the latest confirmed vote
// GET /api/auth/me
func (h *MeHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fid := middleware.GetUserFID(r)
	token := middleware.GetBackendToken(r)
	if fid == 0 || token == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	user, err := h.users.CurrentUser(r.Context(), token, fid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(user); err != nil {
		log.Printf("Failed to encode user response: %v", err)
	}
}
