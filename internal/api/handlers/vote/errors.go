package vote

import (
	"errors"
	"log"
	"net/http"

	"Brnd/internal/api/handlers"
	"Brnd/internal/core/voting"
	"Brnd/internal/gateway"
)

// handleFlowError converts flow errors to HTTP responses. Validation and
// state errors still carry the flow snapshot so the client can render the
// retained error in place; the flow stays interactive throughout.
func handleFlowError(w http.ResponseWriter, f *voting.Flow, err error) {
	var ite *voting.InvalidTransitionError
	switch {
	case errors.Is(err, voting.ErrInvalidSelection),
		errors.Is(err, voting.ErrDuplicateSelection),
		errors.Is(err, voting.ErrSelectionFull),
		errors.Is(err, voting.ErrBrandAlreadySelected):
		writeFlowError(w, http.StatusBadRequest, f, err)
	case errors.Is(err, voting.ErrAlreadyVoted):
		writeFlowError(w, http.StatusConflict, f, err)
	case errors.Is(err, voting.ErrSubmissionInFlight),
		errors.Is(err, voting.ErrShareInFlight):
		writeFlowError(w, http.StatusConflict, f, err)
	case errors.Is(err, voting.ErrShareNotCompleted):
		// Not a failure: the composer was dismissed. The flow stays in the
		// share step with the retained message.
		writeFlow(w, f)
	case errors.As(err, &ite):
		writeFlowError(w, http.StatusConflict, f, err)
	case gateway.IsAuthError(err):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
	case errors.Is(err, gateway.ErrRateLimited):
		handlers.WriteError(w, http.StatusTooManyRequests, "RateLimited", "Too many requests")
	default:
		log.Printf("Vote flow error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to process vote")
	}
}

// writeFlowError writes a flow snapshot with an explicit error attached,
// under a non-2xx status.
func writeFlowError(w http.ResponseWriter, status int, f *voting.Flow, err error) {
	resp := renderFlow(f)
	if resp.Error == nil {
		resp.Error = &flowError{Title: errorTitle(err), Message: err.Error()}
	}
	writeJSON(w, status, resp)
}
