package users

import "context"

// Gateway is the slice of the remote data gateway this service consumes.
// Token-taking methods require the backend bearer token obtained at login.
type Gateway interface {
	LogIn(ctx context.Context, req LoginRequest) (*LoginResult, error)
	GetMe(ctx context.Context, token string) (*User, error)
	GetMyVoteHistory(ctx context.Context, token string, pageID, limit int) (*VoteHistory, error)
	GetUserVoteHistory(ctx context.Context, fid int64, pageID, limit int) (*VoteHistory, error)
	GetUserBrands(ctx context.Context, token string) ([]UserBrand, error)
	GetVotesForDay(ctx context.Context, token string, unixDate int64) (*UserVote, error)
}

// Service defines the user-facing operations; reads go through the shared
// query cache under the "auth", "user-votes" and "userBrands" prefixes.
type Service interface {
	// LogIn bootstraps the session against the backend and primes the
	// auth cache entry for the user.
	LogIn(ctx context.Context, req LoginRequest) (*LoginResult, error)

	// CurrentUser returns the authenticated user, cached under the auth
	// prefix so a vote submission forces a refetch of HasVotedToday.
	CurrentUser(ctx context.Context, token string, fid int64) (*User, error)

	// MyVoteHistory returns one page of the personal vote history.
	MyVoteHistory(ctx context.Context, token string, fid int64, pageID, limit int) (*VoteHistory, error)

	// VoteHistoryFor returns one page of any user's public vote history.
	VoteHistoryFor(ctx context.Context, fid int64, pageID, limit int) (*VoteHistory, error)

	// Brands returns the brands the user has podiumed, with per-brand points.
	Brands(ctx context.Context, token string, fid int64) ([]UserBrand, error)

	// VotesForDay returns the user's confirmed vote for a given day.
	VotesForDay(ctx context.Context, token string, fid int64, unixDate int64) (*UserVote, error)

	// SignOut drops every cache entry: identity itself changed.
	SignOut(ctx context.Context, fid int64)
}
