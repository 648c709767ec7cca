package vote

import (
	"encoding/json"
	"net/http"

	"Brnd/internal/api/handlers"
	"Brnd/internal/api/middleware"
	"Brnd/internal/core/brands"
	"Brnd/internal/core/voting"
)

// SubmitVoteHandler handles daily podium submission
type SubmitVoteHandler struct {
	flows *voting.Manager
}

// NewSubmitVoteHandler creates a new submit vote handler
func NewSubmitVoteHandler(flows *voting.Manager) *SubmitVoteHandler {
	return &SubmitVoteHandler{
		flows: flows,
	}
}

// HandleSubmitVote submits the caller's podium for the day
// POST /api/votes
//
// Request body: { "podium": [{ "id": 1, "name": "...", ... }, ...] }
// The podium must hold exactly three distinct brands; validation failures
// fail fast with no backend call
func (h *SubmitVoteHandler) HandleSubmitVote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fid := middleware.GetUserFID(r)
	token := middleware.GetBackendToken(r)
	if fid == 0 || token == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req struct {
		Podium []brands.Brand `json:"podium"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	flow := h.flows.Flow(fid, token)
	// Only touch the working podium while still composing; a repeat POST
	// during an in-flight submission falls through to the in-flight guard.
	if flow.State() == voting.StateComposing {
		if err := flow.SetPodium(req.Podium); err != nil {
			handleFlowError(w, flow, err)
			return
		}
	}
	if err := flow.Submit(r.Context()); err != nil {
		handleFlowError(w, flow, err)
		return
	}

	writeFlow(w, flow)
}
