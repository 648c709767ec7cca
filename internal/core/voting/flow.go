package voting

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"Brnd/internal/core/brands"
	"Brnd/internal/gateway"
)

// State is a named vote flow state.
type State string

// Flow states. COMPOSING is initial; CONGRATS is terminal for the day.
// Error recovery returns to COMPOSING (failed submit) or SHARING (failed
// share verification).
const (
	StateComposing  State = "COMPOSING"
	StateSubmitting State = "SUBMITTING"
	StateSharing    State = "SHARING"
	StateVerifying  State = "VERIFYING"
	StateCongrats   State = "CONGRATS"
)

// invalidationPrefixes is the cache prefix set dropped after a successful
// submission: the vote changes server-computed points, standings and the
// hasVotedToday flag that already-open views may be holding stale. Applied
// together as a set, never partially.
var invalidationPrefixes = []string{"auth", "brands", "leaderboard", "userBrands", "user-votes"}

// verifyTimeout bounds the background share verification call.
const verifyTimeout = 30 * time.Second

// Flow orchestrates one user's daily voting flow: compose podium -> submit
// vote -> share -> confirm. Transitions are serialized on the flow's lock;
// the busy flag additionally rejects a second submission or share while one
// is in flight.
type Flow struct {
	mu        sync.Mutex
	state     State
	selection Selection
	podium    []brands.Brand // confirmed podium, set when submission succeeds
	voteID    string
	busy      bool
	verifying bool  // background share verification in flight
	lastErr   error // retained for display; cleared on the next action

	fid   int64
	token string

	gateway    Gateway
	cache      Invalidator
	composer   Composer
	userSource UserSource
	outbox     OutboxRepo // optional crash-recovery net for verifications
	frameURL   string     // public base URL for the share embed
}

// FlowConfig carries the collaborators a flow needs.
type FlowConfig struct {
	Gateway    Gateway
	Cache      Invalidator
	Composer   Composer
	UserSource UserSource
	Outbox     OutboxRepo
	FrameURL   string
}

// NewFlow creates a flow in COMPOSING for the given authenticated user.
func NewFlow(fid int64, token string, cfg FlowConfig) *Flow {
	return &Flow{
		state:      StateComposing,
		fid:        fid,
		token:      token,
		gateway:    cfg.Gateway,
		cache:      cfg.Cache,
		composer:   cfg.Composer,
		userSource: cfg.UserSource,
		outbox:     cfg.Outbox,
		frameURL:   cfg.FrameURL,
	}
}

// State returns the flow's current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Verifying reports whether a background share verification is in flight.
// The flow sits optimistically in CONGRATS during verification.
func (f *Flow) Verifying() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verifying
}

// Err returns the retained error from the last failed action, if any.
// Error states never remove interactivity: the retry affordance stays
// reachable and the error clears on the next action.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// VoteID returns the confirmed vote id, empty before submission succeeds.
func (f *Flow) VoteID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voteID
}

// Podium returns the confirmed podium carried by the flow after submission,
// or the working selection before it.
func (f *Flow) Podium() []brands.Brand {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.podium != nil {
		return append([]brands.Brand(nil), f.podium...)
	}
	return f.selection.Brands()
}

// Select adds a brand to the working podium. Only valid while composing.
func (f *Flow) Select(b brands.Brand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateComposing {
		return &InvalidTransitionError{From: f.state, Op: "select"}
	}
	return f.selection.Add(b)
}

// Deselect removes a brand from the working podium.
func (f *Flow) Deselect(brandID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateComposing {
		return &InvalidTransitionError{From: f.state, Op: "deselect"}
	}
	f.selection.Remove(brandID)
	return nil
}

// SetPodium replaces the working podium in one step, for callers that
// assemble the selection outside the flow.
func (f *Flow) SetPodium(picks []brands.Brand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateComposing {
		return &InvalidTransitionError{From: f.state, Op: "set podium"}
	}
	f.selection.Set(picks)
	return nil
}

// Submit performs COMPOSING -> SUBMITTING -> SHARING. Preconditions are
// checked before any network call: exactly three distinct brands and a
// cached hasVotedToday of false. A validation failure fails fast with no
// network traffic; a second Submit while one is in flight is rejected
// client-side since the backend allows at most one vote per day anyway.
func (f *Flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.busy || f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if f.state != StateComposing {
		from := f.state
		f.mu.Unlock()
		return &InvalidTransitionError{From: from, Op: "submit"}
	}

	// 1. Validate the selection before anything leaves the process.
	if err := f.selection.Validate(); err != nil {
		f.lastErr = err
		f.mu.Unlock()
		return err
	}

	// Claim the flow before the first network call, otherwise a second
	// Submit arriving during the user fetch would pass the guard above and
	// both would reach the backend.
	f.busy = true
	f.lastErr = nil
	picks := f.selection.Brands()
	ids := f.selection.IDs()
	token := f.token
	f.mu.Unlock()

	// 2. Check the cached hasVotedToday flag. Terminal for the day; the
	// only escape is the server-side reset.
	user, err := f.userSource.CurrentUser(ctx, token, f.fid)
	if err != nil {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
		return fmt.Errorf("failed to load current user: %w", err)
	}
	if user.HasVotedToday {
		f.mu.Lock()
		f.busy = false
		f.lastErr = ErrAlreadyVoted
		f.mu.Unlock()
		return ErrAlreadyVoted
	}

	// 3. Enter SUBMITTING and send the three ids in rank order.
	f.mu.Lock()
	f.state = StateSubmitting
	f.mu.Unlock()

	receipt, err := f.gateway.SubmitVote(ctx, token, ids)
	if err != nil {
		if errors.Is(err, gateway.ErrConflict) {
			err = ErrAlreadyVoted
		}
		f.mu.Lock()
		f.state = StateComposing // roll back; selection is preserved
		f.busy = false
		f.lastErr = err
		f.mu.Unlock()
		return err
	}

	// 4. Invalidate the stale prefixes before the transition completes, so
	// no later read in this flow can race the invalidation.
	f.cache.InvalidatePrefix(invalidationPrefixes...)

	f.mu.Lock()
	f.podium = picks
	f.voteID = receipt.ID
	f.state = StateSharing
	f.busy = false
	f.mu.Unlock()

	log.Printf("[VOTE-FLOW] Vote %s submitted for fid %d, entering share step", receipt.ID, f.fid)
	return nil
}

// Share performs SHARING -> VERIFYING -> CONGRATS. The compose result is
// awaited; verification is not. On a successful compose the flow advances
// to CONGRATS immediately and the backend verification runs in the
// background — perceived reward is immediate, correctness is reconciled
// after the fact. A verification failure routes back to SHARING with a
// visible error rather than being swallowed.
func (f *Flow) Share(ctx context.Context) error {
	return f.share(ctx, func(ctx context.Context, text string, embeds []string) (*Cast, error) {
		if f.composer == nil {
			return nil, nil
		}
		return f.composer.ComposeCast(ctx, text, embeds)
	})
}

// ShareWithCast completes the share step with a cast the client already
// composed. An empty hash means the composer was dismissed.
func (f *Flow) ShareWithCast(ctx context.Context, castHash string) error {
	return f.share(ctx, func(ctx context.Context, text string, embeds []string) (*Cast, error) {
		if castHash == "" {
			return nil, nil
		}
		return &Cast{Hash: castHash}, nil
	})
}

// SharePayload returns the compose text and embed URL for the confirmed
// podium, for clients that run the composer themselves.
func (f *Flow) SharePayload() (text string, embed string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return shareText(f.podium), f.embedURL(f.voteID)
}

func (f *Flow) share(ctx context.Context, compose func(context.Context, string, []string) (*Cast, error)) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrShareInFlight
	}
	if f.state != StateSharing {
		from := f.state
		f.mu.Unlock()
		return &InvalidTransitionError{From: from, Op: "share"}
	}
	f.busy = true
	f.lastErr = nil
	podium := append([]brands.Brand(nil), f.podium...)
	voteID := f.voteID
	token := f.token
	f.mu.Unlock()

	cast, err := compose(ctx, shareText(podium), []string{f.embedURL(voteID)})
	if err != nil {
		f.mu.Lock()
		f.busy = false
		f.lastErr = err
		f.mu.Unlock()
		return fmt.Errorf("failed to compose cast: %w", err)
	}
	if cast == nil || cast.Hash == "" {
		// The user dismissed the composer: not a flow failure, but no
		// verification is issued and the flow stays in SHARING.
		f.mu.Lock()
		f.busy = false
		f.lastErr = ErrShareNotCompleted
		f.mu.Unlock()
		return ErrShareNotCompleted
	}

	f.mu.Lock()
	f.state = StateVerifying
	f.verifying = true
	f.mu.Unlock()

	pending := &PendingVerification{
		FID:      f.fid,
		VoteID:   voteID,
		CastHash: cast.Hash,
		Token:    token,
	}
	if f.outbox != nil {
		if err := f.outbox.Enqueue(ctx, pending); err != nil {
			// Best effort: the direct verification below still runs.
			log.Printf("[VOTE-FLOW] Failed to enqueue share verification for vote %s: %v", voteID, err)
		}
	}

	// Optimistic advance: the user sees congrats now.
	f.mu.Lock()
	f.state = StateCongrats
	f.busy = false
	f.mu.Unlock()

	go f.verifyShare(pending)
	return nil
}

// verifyShare runs the background verification for a composed share.
func (f *Flow) verifyShare(pending *PendingVerification) {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	verified, err := f.gateway.ShareFrame(ctx, pending.Token)
	if err == nil && verified {
		if f.outbox != nil {
			if markErr := f.outbox.MarkVerified(ctx, pending.ID); markErr != nil {
				log.Printf("[VOTE-FLOW] Failed to mark verification %d done: %v", pending.ID, markErr)
			}
		}
		f.mu.Lock()
		f.verifying = false
		f.mu.Unlock()
		log.Printf("[VOTE-FLOW] Share verified for vote %s", pending.VoteID)
		return
	}

	if err == nil {
		err = errors.New("backend rejected the share")
	}
	if f.outbox != nil {
		if recErr := f.outbox.RecordAttempt(ctx, pending.ID, err.Error()); recErr != nil {
			log.Printf("[VOTE-FLOW] Failed to record verification attempt %d: %v", pending.ID, recErr)
		}
	}

	// Route back to SHARING with the error visible; the share action is
	// re-enabled (busy already false) and guarded against double-submit.
	f.mu.Lock()
	f.state = StateSharing
	f.verifying = false
	f.lastErr = &VerificationError{VoteID: pending.VoteID, Err: err}
	f.mu.Unlock()
	log.Printf("[VOTE-FLOW] Share verification failed for vote %s: %v", pending.VoteID, err)
}

// Skip is always available from the share step. With a confirmed vote it
// completes the flow to CONGRATS; without one (the user skipped before
// submitting) it is a pure navigation no-op back to the entry point, not a
// flow failure. Returns whether the flow reached CONGRATS.
func (f *Flow) Skip() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.voteID == "" {
		return false
	}
	if f.state == StateSharing || f.state == StateVerifying {
		f.state = StateCongrats
	}
	return true
}

// shareText builds the compose text from the confirmed podium in rank order.
func shareText(podium []brands.Brand) string {
	if len(podium) != 3 {
		return "I just created my /brnd podium of today"
	}
	return fmt.Sprintf(
		"I just created my /brnd podium of today:\n\n🥇%s - %s\n🥈%s - %s\n🥉%s - %s",
		podium[0].Name, podium[0].Handle(),
		podium[1].Name, podium[1].Handle(),
		podium[2].Name, podium[2].Handle(),
	)
}

// embedURL is the public podium permalink attached to the cast.
func (f *Flow) embedURL(voteID string) string {
	return fmt.Sprintf("%s/podium/%s", f.frameURL, voteID)
}
