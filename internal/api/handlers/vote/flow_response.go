package vote

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Brnd/internal/core/brands"
	"Brnd/internal/core/voting"
)

// flowError is the user-facing rendering of a retained flow error.
type flowError struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// flowResponse is the wire rendering of a vote flow's observable state.
type flowResponse struct {
	State     voting.State   `json:"state"`
	Verifying bool           `json:"verifying"`
	VoteID    string         `json:"voteId,omitempty"`
	Podium    []brands.Brand `json:"podium"`
	Error     *flowError     `json:"error,omitempty"`
}

// renderFlow snapshots a flow into its wire form.
func renderFlow(f *voting.Flow) flowResponse {
	resp := flowResponse{
		State:     f.State(),
		Verifying: f.Verifying(),
		VoteID:    f.VoteID(),
		Podium:    f.Podium(),
	}
	if err := f.Err(); err != nil {
		resp.Error = &flowError{
			Title:   errorTitle(err),
			Message: err.Error(),
		}
	}
	return resp
}

// errorTitle maps flow errors to the fixed user-facing titles. The same
// title is shown regardless of which entry point surfaced the error.
func errorTitle(err error) string {
	var verr *voting.VerificationError
	switch {
	case errors.Is(err, voting.ErrInvalidSelection),
		errors.Is(err, voting.ErrSelectionFull),
		errors.Is(err, voting.ErrBrandAlreadySelected):
		return voting.MsgInvalidSelection
	case errors.Is(err, voting.ErrDuplicateSelection):
		return voting.MsgDuplicateSelection
	case errors.Is(err, voting.ErrAlreadyVoted):
		return voting.MsgAlreadyVoted
	case errors.Is(err, voting.ErrShareNotCompleted):
		return voting.MsgShareNotCompleted
	case errors.As(err, &verr):
		return voting.MsgShareNotCompleted
	default:
		return "Something went wrong"
	}
}

// writeFlow writes a flow snapshot response
func writeFlow(w http.ResponseWriter, f *voting.Flow) {
	writeJSON(w, http.StatusOK, renderFlow(f))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode flow response: %v", err)
	}
}
