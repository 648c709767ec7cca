// Package leaderboard binds the ranked-user list to the query cache.
// Leaderboard data tolerates being slightly stale, so reads are served from
// a two-minute freshness window; a vote submission invalidates the whole
// prefix and forces the next read back to the network.
package leaderboard

import (
	"context"
	"fmt"
	"time"

	"Brnd/internal/core/querycache"
)

const freshness = 2 * time.Minute

// Gateway is the slice of the remote data gateway this service consumes.
type Gateway interface {
	GetLeaderboard(ctx context.Context, token string, page, limit int, timeframe string) (*Page, error)
}

// Service serves leaderboard pages. A timeframe switch is a new list
// identity, not more pages of the same list; the pagination controllers the
// handlers own are Reset when it changes.
type Service interface {
	Page(ctx context.Context, token string, fid int64, page, limit int, timeframe string) (*Page, error)
}

type leaderboardService struct {
	gateway Gateway
	cache   *querycache.Store
}

// NewLeaderboardService creates a new leaderboard read service.
func NewLeaderboardService(gateway Gateway, cache *querycache.Store) Service {
	return &leaderboardService{
		gateway: gateway,
		cache:   cache,
	}
}

// Page returns one leaderboard page for the given timeframe. The cache key
// includes the caller's fid because the response carries their personal
// ranking context.
func (s *leaderboardService) Page(ctx context.Context, token string, fid int64, page, limit int, timeframe string) (*Page, error) {
	if timeframe == "" {
		timeframe = TimeframeAll
	}
	if timeframe != TimeframeAll && timeframe != TimeframeWeek && timeframe != TimeframeMonth {
		return nil, NewValidationError("timeframe", "timeframe must be one of: all, week, month")
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := querycache.Key("leaderboard", map[string]any{
		"fid":       fid,
		"page":      page,
		"limit":     limit,
		"timeframe": timeframe,
	})
	result, err := querycache.Fetch(ctx, s.cache, key, freshness, func(ctx context.Context) (*Page, error) {
		return s.gateway.GetLeaderboard(ctx, token, page, limit, timeframe)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return result, nil
}
