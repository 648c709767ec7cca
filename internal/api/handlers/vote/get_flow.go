package vote

import (
	"net/http"

	"Brnd/internal/api/handlers"
	"Brnd/internal/api/middleware"
	"Brnd/internal/core/voting"
)

// GetFlowHandler exposes the caller's current vote flow state
type GetFlowHandler struct {
	flows *voting.Manager
}

// NewGetFlowHandler creates a new flow state handler
func NewGetFlowHandler(flows *voting.Manager) *GetFlowHandler {
	return &GetFlowHandler{
		flows: flows,
	}
}

// HandleGetFlow returns the current flow snapshot, creating a fresh flow in
// the composing state if none exists yet
// GET /api/votes/flow
func (h *GetFlowHandler) HandleGetFlow(w http.ResponseWriter, r *http.Request) {
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

	flow := h.flows.Flow(fid, token)
	writeFlow(w, flow)
}
