package vote

import (
	"encoding/json"
	"log"
	"net/http"

	"Brnd/internal/api/handlers"
	"Brnd/internal/api/middleware"
	"Brnd/internal/core/voting"
)

// SkipVoteHandler handles skipping the share step
type SkipVoteHandler struct {
	flows *voting.Manager
}

// NewSkipVoteHandler creates a new skip vote handler
func NewSkipVoteHandler(flows *voting.Manager) *SkipVoteHandler {
	return &SkipVoteHandler{
		flows: flows,
	}
}

// HandleSkipVote skips sharing. With a confirmed vote the flow completes to
// congrats; without one this is a plain navigation no-op
// POST /api/votes/skip
func (h *SkipVoteHandler) HandleSkipVote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fid := middleware.GetUserFID(r)
	if fid == 0 {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	flow, ok := h.flows.Peek(fid)
	if !ok {
		// No flow means nothing to skip; mirror the voteless no-op.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(map[string]interface{}{
			"completed": false,
		}); err != nil {
			log.Printf("Failed to encode skip response: %v", err)
		}
		return
	}

	completed := flow.Skip()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"completed": completed,
		"state":     flow.State(),
	}); err != nil {
		log.Printf("Failed to encode skip response: %v", err)
	}
}
