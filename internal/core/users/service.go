package users

import (
	"context"
	"fmt"
	"time"

	"Brnd/internal/core/querycache"
)

// Freshness windows for user-scoped reads.
const (
	authFreshness    = 5 * time.Minute
	historyFreshness = 1 * time.Minute
)

// HistoryLimit is the default page size for the personal vote history view.
const HistoryLimit = 15

type userService struct {
	gateway Gateway
	cache   *querycache.Store
}

// NewUserService creates a new user service.
func NewUserService(gateway Gateway, cache *querycache.Store) Service {
	return &userService{
		gateway: gateway,
		cache:   cache,
	}
}

// LogIn bootstraps the session and primes the auth cache entry so the first
// CurrentUser read after login does not refetch.
func (s *userService) LogIn(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if req.FID <= 0 {
		return nil, NewValidationError("fid", "required")
	}
	if req.Token == "" {
		return nil, NewValidationError("token", "required")
	}

	result, err := s.gateway.LogIn(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	s.cache.Set(authKey(req.FID), result.User, authFreshness)
	return result, nil
}

// CurrentUser returns the authenticated user from the auth cache entry,
// refetching on miss. A vote submission invalidates the auth prefix, so the
// next read here observes the flipped HasVotedToday flag.
func (s *userService) CurrentUser(ctx context.Context, token string, fid int64) (*User, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	return querycache.Fetch(ctx, s.cache, authKey(fid), authFreshness, func(ctx context.Context) (*User, error) {
		return s.gateway.GetMe(ctx, token)
	})
}

// MyVoteHistory returns one page of the personal vote history.
func (s *userService) MyVoteHistory(ctx context.Context, token string, fid int64, pageID, limit int) (*VoteHistory, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	if pageID < 1 {
		pageID = 1
	}
	if limit <= 0 {
		limit = HistoryLimit
	}

	key := querycache.Key("user-votes", map[string]any{
		"fid":    fid,
		"pageId": pageID,
		"limit":  limit,
	})
	return querycache.Fetch(ctx, s.cache, key, historyFreshness, func(ctx context.Context) (*VoteHistory, error) {
		return s.gateway.GetMyVoteHistory(ctx, token, pageID, limit)
	})
}

// VoteHistoryFor returns one page of another user's public vote history.
func (s *userService) VoteHistoryFor(ctx context.Context, fid int64, pageID, limit int) (*VoteHistory, error) {
	if fid <= 0 {
		return nil, NewValidationError("fid", "required")
	}
	if pageID < 1 {
		pageID = 1
	}
	if limit <= 0 {
		limit = HistoryLimit
	}

	key := querycache.Key("user-votes:public", map[string]any{
		"fid":    fid,
		"pageId": pageID,
		"limit":  limit,
	})
	return querycache.Fetch(ctx, s.cache, key, historyFreshness, func(ctx context.Context) (*VoteHistory, error) {
		return s.gateway.GetUserVoteHistory(ctx, fid, pageID, limit)
	})
}

// Brands returns the user's podiumed brands with per-brand points.
func (s *userService) Brands(ctx context.Context, token string, fid int64) ([]UserBrand, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	key := querycache.Key("userBrands", map[string]any{"fid": fid})
	return querycache.Fetch(ctx, s.cache, key, historyFreshness, func(ctx context.Context) ([]UserBrand, error) {
		return s.gateway.GetUserBrands(ctx, token)
	})
}

// VotesForDay returns the user's confirmed vote for the given unix day.
func (s *userService) VotesForDay(ctx context.Context, token string, fid int64, unixDate int64) (*UserVote, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	key := querycache.Key("user-votes:day", map[string]any{
		"fid":  fid,
		"date": unixDate,
	})
	return querycache.Fetch(ctx, s.cache, key, historyFreshness, func(ctx context.Context) (*UserVote, error) {
		return s.gateway.GetVotesForDay(ctx, token, unixDate)
	})
}

// SignOut drops the whole cache, not just this user's prefixes: identity
// itself changed.
func (s *userService) SignOut(ctx context.Context, fid int64) {
	s.cache.Clear()
}

func authKey(fid int64) string {
	return querycache.Key("auth", map[string]any{"fid": fid})
}
