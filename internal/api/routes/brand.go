package routes

import (
	"Brnd/internal/api/handlers/brand"
	"Brnd/internal/core/brands"

	"github.com/go-chi/chi/v5"
)

// RegisterBrandRoutes registers the public brand list and podium feed endpoints
func RegisterBrandRoutes(r chi.Router, service brands.Service) {
	listHandler := brand.NewListBrandsHandler(service)
	feedHandler := brand.NewRecentPodiumsHandler(service)

	// Both endpoints are public; freshness is handled by the query cache
	r.Get("/api/brands", listHandler.HandleListBrands)
	r.Get("/api/podiums/recent", feedHandler.HandleRecentPodiums)
}
