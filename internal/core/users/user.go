package users

import (
	"time"

	"Brnd/internal/core/brands"
)

// User is the authenticated Farcaster user as known to the backend.
// Points only ever increase from this subsystem's perspective (they are
// awarded by server-confirmed vote/share events); HasVotedToday flips
// false -> true at most once per calendar day and is only observable after
// a successful vote mutation and subsequent refetch.
type User struct {
	ID                   string `json:"id"`
	FID                  int64  `json:"fid"`
	Username             string `json:"username"`
	PhotoURL             string `json:"photoUrl"`
	Points               int    `json:"points"`
	HasVotedToday        bool   `json:"hasVotedToday"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
}

// LoginRequest carries the Farcaster mini-app context into the backend
// bootstrap call. Token acquisition itself is an external capability; the
// token arrives here as an opaque input.
type LoginRequest struct {
	FID      int64  `json:"fid"`
	Username string `json:"username"`
	PhotoURL string `json:"photoUrl"`
	Domain   string `json:"domain"`
	Token    string `json:"token"`
}

// LoginResult is the backend's bootstrap response: the user snapshot plus
// the bearer token used for subsequent backend calls.
type LoginResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// VoteHistoryEntry is one day's podium from the personal vote history.
type VoteHistoryEntry struct {
	ID     string       `json:"id"`
	Date   string       `json:"date"`
	Brand1 brands.Brand `json:"brand1"`
	Brand2 brands.Brand `json:"brand2"`
	Brand3 brands.Brand `json:"brand3"`
}

// VoteHistory is a page of the personal vote history, keyed by date
// (the backend returns a date-keyed map rather than a flat list).
type VoteHistory struct {
	Count int                         `json:"count"`
	Days  map[string]VoteHistoryEntry `json:"data"`
}

// UserVote is a confirmed vote record for a specific day.
type UserVote struct {
	ID        string    `json:"id"`
	BrandIDs  [3]int    `json:"brandIds"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserBrand is a brand the user has placed on a podium, with the points
// the user has given it across all their votes.
type UserBrand struct {
	Brand  brands.Brand `json:"brand"`
	Points int          `json:"points"`
}
