package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"Brnd/internal/core/users"
)

// LogIn bootstraps a session against the backend using the Farcaster
// mini-app context. POST /auth/login
func (c *Client) LogIn(ctx context.Context, req users.LoginRequest) (*users.LoginResult, error) {
	var result users.LoginResult
	if err := c.post(ctx, "logIn", "/auth/login", "", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMe retrieves the authenticated user. GET /auth/me
func (c *Client) GetMe(ctx context.Context, token string) (*users.User, error) {
	var result users.User
	if err := c.get(ctx, "getMe", "/auth/me", nil, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMyVoteHistory retrieves one page of the authenticated user's vote
// history. GET /my-vote-history?pageId&limit
func (c *Client) GetMyVoteHistory(ctx context.Context, token string, pageID, limit int) (*users.VoteHistory, error) {
	query := url.Values{
		"pageId": {strconv.Itoa(pageID)},
		"limit":  {strconv.Itoa(limit)},
	}

	var result users.VoteHistory
	if err := c.get(ctx, "getMyVoteHistory", "/my-vote-history", query, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUserVoteHistory retrieves one page of any user's public vote history.
// GET /user/{fid}/vote-history?pageId&limit
func (c *Client) GetUserVoteHistory(ctx context.Context, fid int64, pageID, limit int) (*users.VoteHistory, error) {
	query := url.Values{
		"pageId": {strconv.Itoa(pageID)},
		"limit":  {strconv.Itoa(limit)},
	}

	var result users.VoteHistory
	path := fmt.Sprintf("/user/%d/vote-history", fid)
	if err := c.get(ctx, "getUserVoteHistory", path, query, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUserBrands retrieves the authenticated user's podiumed brands.
// GET /user/brands
func (c *Client) GetUserBrands(ctx context.Context, token string) ([]users.UserBrand, error) {
	var result []users.UserBrand
	if err := c.get(ctx, "getUserBrands", "/user/brands", nil, token, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetVotesForDay retrieves the authenticated user's vote for a unix day.
// GET /votes/{unixDate}
func (c *Client) GetVotesForDay(ctx context.Context, token string, unixDate int64) (*users.UserVote, error) {
	var result users.UserVote
	path := fmt.Sprintf("/votes/%d", unixDate)
	if err := c.get(ctx, "getVotesForDay", path, nil, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
