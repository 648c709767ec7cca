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

// UserBrandsHandler returns the brands the caller has podiumed
type UserBrandsHandler struct {
	service users.Service
}

// NewUserBrandsHandler creates a new user brands handler
func NewUserBrandsHandler(service users.Service) *UserBrandsHandler {
	return &UserBrandsHandler{
		service: service,
	}
}

// HandleUserBrands retrieves the caller's podiumed brands with per-brand points
// GET /api/user/brands
func (h *UserBrandsHandler) HandleUserBrands(w http.ResponseWriter, r *http.Request) {
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

	userBrands, err := h.service.Brands(r.Context(), token, fid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userBrands); err != nil {
		log.Printf("Failed to encode user brands response: %v", err)
	}
}

// HandleVotesForDay retrieves the caller's confirmed vote for a given day
// GET /api/user/votes/{unixDate}
func (h *UserBrandsHandler) HandleVotesForDay(w http.ResponseWriter, r *http.Request) {
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

	unixDate, err := strconv.ParseInt(chi.URLParam(r, "unixDate"), 10, 64)
	if err != nil || unixDate <= 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "unixDate must be a positive unix timestamp")
		return
	}

	vote, err := h.service.VotesForDay(r.Context(), token, fid, unixDate)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(vote); err != nil {
		log.Printf("Failed to encode day vote response: %v", err)
	}
}
