package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"Brnd/internal/api/handlers"
	coreauth "Brnd/internal/core/auth"
	"Brnd/internal/core/users"
)

// LoginHandler handles session bootstrap from a Farcaster Quick Auth token
type LoginHandler struct {
	users    users.Service
	verifier coreauth.QuickAuthVerifier
	sessions *coreauth.SessionService
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(users users.Service, verifier coreauth.QuickAuthVerifier, sessions *coreauth.SessionService) *LoginHandler {
	return &LoginHandler{
		users:    users,
		verifier: verifier,
		sessions: sessions,
	}
}

// HandleLogin verifies the Quick Auth token, bootstraps the backend session
// and mints the session token the mini-app uses for every subsequent call
// POST /api/auth/login
//
// Request body: { "fid": 123, "username": "...", "photoUrl": "...", "domain": "...", "token": "..." }
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req users.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if req.Token == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "token is required")
		return
	}
	if req.Domain == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "domain is required")
		return
	}

	// 1. Verify the Quick Auth token. The fid it asserts wins over anything
	// the request body claims.
	fid, err := h.verifier.Verify(r.Context(), req.Token, req.Domain)
	if err != nil {
		log.Printf("[AUTH_FAILURE] type=quickauth_rejected ip=%s error=%v", r.RemoteAddr, err)
		handlers.WriteError(w, http.StatusUnauthorized, "InvalidToken", "Quick Auth token rejected")
		return
	}
	req.FID = fid

	// 2. Bootstrap against the backend; this also primes the auth cache.
	result, err := h.users.LogIn(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 3. Mint the session token. The backend bearer token stays server-side.
	token, _, err := h.sessions.Issue(r.Context(), fid, result.Token)
	if err != nil {
		log.Printf("Failed to issue session for fid %d: %v", fid, err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to create session")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"user":  result.User,
		"token": token,
	}); err != nil {
		log.Printf("Failed to encode login response: %v", err)
	}
}
