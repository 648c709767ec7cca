package vote

import (
	"encoding/json"
	"log"
	"net/http"

	"Brnd/internal/api/handlers"
	"Brnd/internal/api/middleware"
	"Brnd/internal/core/voting"
)

// ShareVoteHandler completes the share step of the vote flow
type ShareVoteHandler struct {
	flows *voting.Manager
}

// NewShareVoteHandler creates a new share vote handler
func NewShareVoteHandler(flows *voting.Manager) *ShareVoteHandler {
	return &ShareVoteHandler{
		flows: flows,
	}
}

// HandleShareVote records the compose result and starts verification
// POST /api/votes/share
//
// Request body: { "castHash": "0x..." }
// The mini-app runs the cast composer itself; an empty hash means the user
// dismissed it, which keeps the flow in the share step
func (h *ShareVoteHandler) HandleShareVote(w http.ResponseWriter, r *http.Request) {
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
		CastHash string `json:"castHash"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	flow, ok := h.flows.Peek(fid)
	if !ok {
		handlers.WriteError(w, http.StatusConflict, "NoActiveFlow", "No vote flow in progress")
		return
	}

	if err := flow.ShareWithCast(r.Context(), req.CastHash); err != nil {
		handleFlowError(w, flow, err)
		return
	}

	writeFlow(w, flow)
}

// HandleSharePayload returns the compose text and embed for the confirmed
// podium, so the client can open the composer with them
// GET /api/votes/share
func (h *ShareVoteHandler) HandleSharePayload(w http.ResponseWriter, r *http.Request) {
	fid := middleware.GetUserFID(r)
	if fid == 0 {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	flow, ok := h.flows.Peek(fid)
	if !ok {
		handlers.WriteError(w, http.StatusConflict, "NoActiveFlow", "No vote flow in progress")
		return
	}

	text, embed := flow.SharePayload()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"text":  text,
		"embed": embed,
	}); err != nil {
		log.Printf("Failed to encode share payload response: %v", err)
	}
}
