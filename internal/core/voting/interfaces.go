package voting

import (
	"context"

	"Brnd/internal/core/users"
	"Brnd/internal/gateway"
)

// Gateway is the slice of the remote data gateway the vote flow consumes.
type Gateway interface {
	SubmitVote(ctx context.Context, token string, ids [3]int) (*gateway.VoteReceipt, error)
	ShareFrame(ctx context.Context, token string) (bool, error)
}

// Cast is the external share surface's result. An empty Hash signals a
// non-completed share (the user dismissed the composer).
type Cast struct {
	Hash string `json:"hash"`
}

// Composer is the external share surface: it opens the Farcaster compose
// dialog with prefilled text and embeds and reports the published cast.
type Composer interface {
	ComposeCast(ctx context.Context, text string, embeds []string) (*Cast, error)
}

// UserSource provides the cached authenticated user, used for the
// hasVotedToday submission guard. Satisfied by the users service.
type UserSource interface {
	CurrentUser(ctx context.Context, token string, fid int64) (*users.User, error)
}

// Invalidator is the slice of the query cache the flow writes to.
// Satisfied by the querycache store.
type Invalidator interface {
	InvalidatePrefix(prefixes ...string)
}

// PendingVerification is a share verification awaiting backend confirmation.
// Persisted so a restart still reconciles shares that were composed but not
// yet verified.
type PendingVerification struct {
	ID       int64
	FID      int64
	VoteID   string
	CastHash string
	Token    string
	Attempts int
}

// OutboxRepo persists pending share verifications.
type OutboxRepo interface {
	Enqueue(ctx context.Context, v *PendingVerification) error
	ListPending(ctx context.Context, limit int) ([]*PendingVerification, error)
	MarkVerified(ctx context.Context, id int64) error
	RecordAttempt(ctx context.Context, id int64, reason string) error
}
