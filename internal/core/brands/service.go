package brands

import (
	"context"
	"fmt"
	"time"

	"Brnd/internal/core/pagination"
	"Brnd/internal/core/querycache"
)

// Freshness windows for brand-keyed reads. The public feed turns over
// quickly, the ranked list does not.
const (
	listFreshness = 2 * time.Minute
	feedFreshness = 30 * time.Second
)

// Default page sizes per view.
const (
	ListLimit = 20
	FeedLimit = 20
)

// Gateway is the slice of the remote data gateway this service consumes.
type Gateway interface {
	GetBrands(ctx context.Context, order, search string, page, limit int) (pagination.Page[Brand], error)
	GetRecentPodiums(ctx context.Context, page, limit int) (pagination.Page[RecentPodium], error)
}

// Service serves brand list and public podium feed reads through the query
// cache. All keys live under the "brands" prefix so a vote submission
// invalidates the ranked list and the feed together.
type Service interface {
	List(ctx context.Context, order, search string, page, limit int) (pagination.Page[Brand], error)
	RecentPodiums(ctx context.Context, page, limit int) (pagination.Page[RecentPodium], error)
}

type brandService struct {
	gateway Gateway
	cache   *querycache.Store
}

// NewBrandService creates a new brand read service.
func NewBrandService(gateway Gateway, cache *querycache.Store) Service {
	return &brandService{
		gateway: gateway,
		cache:   cache,
	}
}

// List returns one page of the ranked brand list.
func (s *brandService) List(ctx context.Context, order, search string, page, limit int) (pagination.Page[Brand], error) {
	if order == "" {
		order = OrderTop
	}
	if order != OrderTop && order != OrderNew && order != OrderAll {
		return pagination.Page[Brand]{}, NewValidationError("order", "order must be one of: top, new, all")
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = ListLimit
	}

	key := querycache.Key("brands", map[string]any{
		"order":  order,
		"search": search,
		"page":   page,
		"limit":  limit,
	})
	result, err := querycache.Fetch(ctx, s.cache, key, listFreshness, func(ctx context.Context) (pagination.Page[Brand], error) {
		return s.gateway.GetBrands(ctx, order, search, page, limit)
	})
	if err != nil {
		return pagination.Page[Brand]{}, fmt.Errorf("failed to get brand list: %w", err)
	}
	return result, nil
}

// RecentPodiums returns one page of the public recent-podiums feed.
// Keyed under the brands prefix deliberately: the submit-time invalidation
// set covers the feed without a dedicated prefix.
func (s *brandService) RecentPodiums(ctx context.Context, page, limit int) (pagination.Page[RecentPodium], error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = FeedLimit
	}

	key := querycache.Key("brands:recent-podiums", map[string]any{
		"page":  page,
		"limit": limit,
	})
	result, err := querycache.Fetch(ctx, s.cache, key, feedFreshness, func(ctx context.Context) (pagination.Page[RecentPodium], error) {
		return s.gateway.GetRecentPodiums(ctx, page, limit)
	})
	if err != nil {
		return pagination.Page[RecentPodium]{}, fmt.Errorf("failed to get recent podiums: %w", err)
	}
	return result, nil
}
