package leaderboard

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"Brnd/internal/api/middleware"
	"Brnd/internal/core/leaderboard"
)

// GetLeaderboardHandler handles ranked user list retrieval
type GetLeaderboardHandler struct {
	service leaderboard.Service
}

// NewGetLeaderboardHandler creates a new leaderboard handler
func NewGetLeaderboardHandler(service leaderboard.Service) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{
		service: service,
	}
}

// HandleGetLeaderboard retrieves one leaderboard page for a timeframe
// GET /api/leaderboard?timeframe=all&page=1&limit=50
// Authentication is optional; with a session the response carries the
// caller's own ranking context
func (h *GetLeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fid := middleware.GetUserFID(r)
	token := middleware.GetBackendToken(r)

	timeframe := r.URL.Query().Get("timeframe")
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			page = v
		}
	}
	limit := leaderboard.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	result, err := h.service.Page(r.Context(), token, fid, page, limit, timeframe)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode leaderboard response: %v", err)
	}
}
