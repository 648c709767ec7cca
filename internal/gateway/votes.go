package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// VoteReceipt is the backend's acknowledgement of a created vote.
type VoteReceipt struct {
	ID string `json:"id"`
}

// SubmitVote creates the day's vote from three distinct brand ids in rank
// order (index 0 = 1st place). An idempotency key is attached so a retried
// request cannot create a second vote; the backend additionally enforces
// one vote per user per calendar day (409 -> ErrConflict).
// POST /votes
func (c *Client) SubmitVote(ctx context.Context, token string, ids [3]int) (*VoteReceipt, error) {
	payload := map[string]any{
		"ids": []int{ids[0], ids[1], ids[2]},
	}
	headers := map[string]string{
		"X-Idempotency-Key": uuid.NewString(),
	}

	var result VoteReceipt
	if err := c.do(ctx, "submitVote", http.MethodPost, "/votes", nil, token, payload, headers, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ShareFrame reports a completed share to the backend, which verifies the
// cast and awards the share points. Returns the backend's verification
// verdict. Idempotent server-side: re-reporting a verified share is a no-op.
// POST /share-frame
func (c *Client) ShareFrame(ctx context.Context, token string) (bool, error) {
	var verified bool
	if err := c.post(ctx, "shareFrame", "/share-frame", token, nil, &verified); err != nil {
		return false, err
	}
	return verified, nil
}
