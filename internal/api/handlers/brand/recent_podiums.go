package brand

import (
	"encoding/json"
	"log"
	"net/http"

	"Brnd/internal/core/brands"
)

// RecentPodiumsHandler handles the public recent-podiums feed
type RecentPodiumsHandler struct {
	service brands.Service
}

// NewRecentPodiumsHandler creates a new recent podiums handler
func NewRecentPodiumsHandler(service brands.Service) *RecentPodiumsHandler {
	return &RecentPodiumsHandler{
		service: service,
	}
}

// HandleRecentPodiums retrieves one page of the public podium feed
// GET /api/podiums/recent?page=1&limit=20
func (h *RecentPodiumsHandler) HandleRecentPodiums(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", brands.FeedLimit)

	result, err := h.service.RecentPodiums(r.Context(), page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode recent podiums response: %v", err)
	}
}
