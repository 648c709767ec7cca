package brand

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"Brnd/internal/core/brands"
)

// ListBrandsHandler handles ranked brand list retrieval
type ListBrandsHandler struct {
	service brands.Service
}

// NewListBrandsHandler creates a new brand list handler
func NewListBrandsHandler(service brands.Service) *ListBrandsHandler {
	return &ListBrandsHandler{
		service: service,
	}
}

// HandleListBrands retrieves one page of the ranked brand list
// GET /api/brands?order=top&search=&page=1&limit=20
// Public endpoint; served from the query cache within its freshness window
func (h *ListBrandsHandler) HandleListBrands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	order := r.URL.Query().Get("order")
	search := r.URL.Query().Get("search")
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", brands.ListLimit)

	result, err := h.service.List(r.Context(), order, search, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode brand list response: %v", err)
	}
}

// queryInt parses an integer query parameter, falling back to def on
// absence or garbage.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
