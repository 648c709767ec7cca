package user

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Brnd/internal/api/handlers"
	"Brnd/internal/api/middleware"
	"Brnd/internal/core/users"
)

// VoteHistoryHandler handles personal and public vote history retrieval
type VoteHistoryHandler struct {
	service users.Service
}

// NewVoteHistoryHandler creates a new vote history handler
func NewVoteHistoryHandler(service users.Service) *VoteHistoryHandler {
	return &VoteHistoryHandler{
		service: service,
	}
}

// HandleMyVoteHistory retrieves one page of the caller's vote history
// GET /api/my-vote-history?pageId=1&limit=15
// The backend keys pages by pageId; the response is a date-keyed map
func (h *VoteHistoryHandler) HandleMyVoteHistory(w http.ResponseWriter, r *http.Request) {
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

	pageID, limit := historyParams(r)

	history, err := h.service.MyVoteHistory(r.Context(), token, fid, pageID, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(history); err != nil {
		log.Printf("Failed to encode vote history response: %v", err)
	}
}

// HandleUserVoteHistory retrieves one page of any user's public vote history
// GET /api/user/{fid}/vote-history?pageId=1&limit=15
func (h *VoteHistoryHandler) HandleUserVoteHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fid, err := strconv.ParseInt(chi.URLParam(r, "fid"), 10, 64)
	if err != nil || fid <= 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "fid must be a positive integer")
		return
	}

	pageID, limit := historyParams(r)

	history, err := h.service.VoteHistoryFor(r.Context(), fid, pageID, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(history); err != nil {
		log.Printf("Failed to encode vote history response: %v", err)
	}
}

// historyParams parses the shared pageId/limit query parameters
func historyParams(r *http.Request) (pageID, limit int) {
	pageID = 1
	if raw := r.URL.Query().Get("pageId"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			pageID = v
		}
	}
	limit = users.HistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	return pageID, limit
}
