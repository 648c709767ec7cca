package gateway

import (
	"context"
	"net/url"
	"strconv"

	"Brnd/internal/core/brands"
	"Brnd/internal/core/leaderboard"
	"Brnd/internal/core/pagination"
)

// GetLeaderboard retrieves one ranked-user page.
// GET /leaderboard?page&limit&timeframe
func (c *Client) GetLeaderboard(ctx context.Context, token string, page, limit int, timeframe string) (*leaderboard.Page, error) {
	query := url.Values{
		"page":      {strconv.Itoa(page)},
		"limit":     {strconv.Itoa(limit)},
		"timeframe": {timeframe},
	}

	var result leaderboard.Page
	if err := c.get(ctx, "getLeaderboard", "/leaderboard", query, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBrands retrieves one page of the ranked brand list.
// GET /brands?order&search&page&limit
func (c *Client) GetBrands(ctx context.Context, order, search string, page, limit int) (pagination.Page[brands.Brand], error) {
	query := url.Values{
		"order": {order},
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	if search != "" {
		query.Set("search", search)
	}

	var result struct {
		Brands []brands.Brand  `json:"brands"`
		Meta   pagination.Meta `json:"pagination"`
	}
	if err := c.get(ctx, "getBrands", "/brands", query, "", &result); err != nil {
		return pagination.Page[brands.Brand]{}, err
	}
	return pagination.Page[brands.Brand]{Items: result.Brands, Meta: result.Meta}, nil
}

// GetRecentPodiums retrieves one page of the public recent-podiums feed.
// GET /podiums/recent?page&limit
func (c *Client) GetRecentPodiums(ctx context.Context, page, limit int) (pagination.Page[brands.RecentPodium], error) {
	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}

	var result struct {
		Podiums []brands.RecentPodium `json:"podiums"`
		Meta    pagination.Meta       `json:"pagination"`
	}
	if err := c.get(ctx, "getRecentPodiums", "/podiums/recent", query, "", &result); err != nil {
		return pagination.Page[brands.RecentPodium]{}, err
	}
	return pagination.Page[brands.RecentPodium]{Items: result.Podiums, Meta: result.Meta}, nil
}
