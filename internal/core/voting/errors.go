package voting

import (
	"errors"
	"fmt"
)

// Sentinel errors for vote flow operations. The three validation errors are
// detected client-side and never reach the network.
var (
	// ErrInvalidSelection is returned when the podium does not hold exactly
	// three brands.
	ErrInvalidSelection = errors.New("selection must contain exactly 3 brands")

	// ErrDuplicateSelection is returned when the podium holds the same
	// brand twice.
	ErrDuplicateSelection = errors.New("selection must contain 3 different brands")

	// ErrAlreadyVoted is the terminal state for the day: the only escape is
	// the server-side daily reset.
	ErrAlreadyVoted = errors.New("already voted today")

	// ErrSubmissionInFlight guards against a duplicate submission while one
	// is already pending.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrShareInFlight guards the share action against double-submission.
	ErrShareInFlight = errors.New("a share is already in flight")

	// ErrShareNotCompleted is returned when the external compose surface
	// reports no cast hash: the user dismissed the composer.
	ErrShareNotCompleted = errors.New("share was not completed")

	// ErrSelectionFull is returned when adding a fourth brand to a podium.
	ErrSelectionFull = errors.New("podium already holds 3 brands")

	// ErrBrandAlreadySelected is returned when adding a brand twice.
	ErrBrandAlreadySelected = errors.New("brand is already on the podium")
)

// User-facing titles for the terminal validation cases, enforced
// identically regardless of the flow's entry point.
const (
	MsgInvalidSelection   = "Invalid Selection"
	MsgDuplicateSelection = "Duplicate Selection"
	MsgAlreadyVoted       = "Already Voted"
	MsgShareNotCompleted  = "Share was not completed"
)

// InvalidTransitionError is returned when an operation is attempted from a
// state that does not permit it.
type InvalidTransitionError struct {
	From State
	Op   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from state %s", e.Op, e.From)
}

// VerificationError wraps a failed post-share background verification. It
// does not roll back the optimistic congrats advance, but it does return
// the flow to the sharing state with this error retained for display.
type VerificationError struct {
	VoteID string
	Err    error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("share verification failed for vote %s: %v", e.VoteID, e.Err)
	}
	return fmt.Sprintf("share verification failed for vote %s", e.VoteID)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}
