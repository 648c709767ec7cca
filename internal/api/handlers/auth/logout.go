package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"Brnd/internal/api/handlers"
	"Brnd/internal/api/middleware"
	coreauth "Brnd/internal/core/auth"
	"Brnd/internal/core/users"
	"Brnd/internal/core/voting"
)

// LogoutHandler revokes the session and drops the cache
type LogoutHandler struct {
	users    users.Service
	sessions *coreauth.SessionService
	flows    *voting.Manager
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(users users.Service, sessions *coreauth.SessionService, flows *voting.Manager) *LogoutHandler {
	return &LogoutHandler{
		users:    users,
		sessions: sessions,
		flows:    flows,
	}
}

// HandleLogout revokes the server-side session record and clears every
// cache entry, since identity itself changed
// POST /api/auth/logout
func (h *LogoutHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fid := middleware.GetUserFID(r)
	sessionID := middleware.GetSessionID(r)
	if fid == 0 || sessionID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.sessions.Revoke(r.Context(), sessionID); err != nil {
		log.Printf("Failed to revoke session %s: %v", sessionID, err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to sign out")
		return
	}
	h.users.SignOut(r.Context(), fid)
	h.flows.Drop(fid)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"signedOut": true,
	}); err != nil {
		log.Printf("Failed to encode logout response: %v", err)
	}
}
