package brands

import "time"

// Score direction states as computed server-side, used by consumers to pick
// an up/down/flat indicator. Passed through untouched.
const (
	ScoreStateUp   = "up"
	ScoreStateDown = "down"
	ScoreStateFlat = "equal"
)

// Brand is an immutable snapshot of a brand as returned by the backend.
// Scores and their direction states are server-computed; this subsystem
// never derives them.
type Brand struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl"`
	Score          int    `json:"score"`
	ScoreWeek      int    `json:"scoreWeek"`
	StateScore     string `json:"stateScore"`
	StateScoreWeek string `json:"stateScoreWeek"`
	Profile        string `json:"profile,omitempty"`
	Channel        string `json:"channel,omitempty"`
}

// Handle returns the brand's Farcaster reference for share text: the
// profile when present, otherwise the channel.
func (b Brand) Handle() string {
	if b.Profile != "" {
		return b.Profile
	}
	return b.Channel
}

// PodiumUser is the public author info attached to a feed podium.
type PodiumUser struct {
	FID      int64  `json:"fid"`
	Username string `json:"username"`
	PhotoURL string `json:"photoUrl"`
}

// RecentPodium is one entry of the public recent-podiums feed: a user's
// ordered daily selection plus the points it awarded.
type RecentPodium struct {
	ID            string     `json:"id"`
	User          PodiumUser `json:"user"`
	Brands        []Brand    `json:"brands"`
	PointsAwarded int        `json:"pointsAwarded"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// List orderings accepted by the brand list endpoint.
const (
	OrderTop = "top"
	OrderNew = "new"
	OrderAll = "all"
)
