package leaderboard

import "Brnd/internal/core/pagination"

// Timeframes accepted by the leaderboard endpoint. The backend owns the
// ranking semantics for each window; this subsystem passes the value
// through verbatim and only uses it to key caches and list identity.
const (
	TimeframeAll   = "all"
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
)

// DefaultLimit is the leaderboard page size.
const DefaultLimit = 50

// Entry is one ranked row of the leaderboard.
type Entry struct {
	ID       string `json:"id"`
	FID      int64  `json:"fid"`
	Username string `json:"username"`
	PhotoURL string `json:"photoUrl"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
}

// CurrentUser describes where the authenticated user sits relative to the
// returned page. Position is "above", "below" or "in-list".
type CurrentUser struct {
	Rank     int    `json:"rank"`
	Points   int    `json:"points"`
	Position string `json:"position"`
}

// Page is one leaderboard page plus the caller's own ranking context.
type Page struct {
	Users       []Entry         `json:"users"`
	Meta        pagination.Meta `json:"pagination"`
	CurrentUser *CurrentUser    `json:"currentUser,omitempty"`
}
